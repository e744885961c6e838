package resample

import "github.com/binview/binview/array"

// Strategy transforms a source array according to resolved per-dimension
// plans. Two variants exist, selected from the payload kind when the
// source is attached: Dense for regular numeric blocks, Binned for event
// payloads.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Resample produces a fresh array implementing the plans. It must not
	// mutate the source.
	Resample(source *array.Array, plans []dimPlan) (*array.Array, error)
}

// strategyFor picks the strategy matching the source payload.
func strategyFor(source *array.Array) Strategy {
	if source.IsBinned() {
		return binnedStrategy{}
	}
	return denseStrategy{}
}

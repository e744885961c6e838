package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepClock_Monotonic(t *testing.T) {
	c := NewStepClock()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
}

func TestLogCapture_RecordsAttrs(t *testing.T) {
	lc := NewLogCapture()
	log := lc.Logger()

	log.Debug("view recomputed", "strategy", "dense", "signature", "abc123")
	log.Info("done")

	records := lc.Records()
	require.Len(t, records, 2)
	assert.Equal(t, slog.LevelDebug, records[0].Level)
	assert.Equal(t, "view recomputed", records[0].Message)
	assert.Equal(t, "dense", records[0].Attrs["strategy"])
	assert.Equal(t, []string{"view recomputed", "done"}, lc.Messages())
}

package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// CapturedRecord is one log record flattened for assertions.
type CapturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that records everything at or above its
// minimum level. Tests wrap it in a slog.Logger, hand that to the code
// under test, and assert on the captured records afterwards.
type LogCapture struct {
	mu      sync.Mutex
	min     slog.Level
	records []CapturedRecord
}

// NewLogCapture creates a capture handler recording at Debug and above.
func NewLogCapture() *LogCapture {
	return &LogCapture{min: slog.LevelDebug}
}

// Logger returns a slog.Logger backed by this capture.
func (c *LogCapture) Logger() *slog.Logger {
	return slog.New(c)
}

func (c *LogCapture) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.min
}

func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, CapturedRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs and WithGroup return the handler unchanged: captured
// assertions only ever look at per-record attrs.
func (c *LogCapture) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *LogCapture) WithGroup(string) slog.Handler      { return c }

// Records returns a copy of everything captured so far.
func (c *LogCapture) Records() []CapturedRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CapturedRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Messages returns the captured messages in order.
func (c *LogCapture) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Message
	}
	return out
}

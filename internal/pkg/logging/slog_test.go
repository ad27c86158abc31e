package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAdapter(buf *bytes.Buffer) *SlogAdapter {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestNewSlogAdapter_NilLogger_UsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.NotNil(t, adapter.logger)
}

func TestSlogAdapter_With_DoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestAdapter(&buf)

	child := parent.With(KeyTraceID, "abc")
	child.Info("child")
	parent.Info("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "trace_id=abc")
	assert.NotContains(t, string(lines[1]), "trace_id")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NewNopLogger()
	l.Debug("x")
	l.Info("x", "k", 1)
	l.Warn("x")
	l.Error("x")
	assert.Same(t, l, l.With("k", "v"))
}

package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/state"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "", nil},
		{"spaces", "   ", nil},
		{"single", "version", []string{"version"}},
		{"args", "download http://x mp3", []string{"download", "http://x", "mp3"}},
		{"mixed whitespace", "\t token  set\v abc \r\n", []string{"token", "set", "abc"}},
		{"form feed", "a\fb", []string{"a", "b"}},
		{"no quoting", `download "a b"`, []string{"download", `"a`, `b"`}},
		// неразрывный пробел не является ASCII пробелом
		{"nbsp kept", "a\u00a0b", []string{"a\u00a0b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.line)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandle_EmptyLine(t *testing.T) {
	r, _ := newTestRegistry()
	h := &mockHandler{name: "x"}
	r.Register(h)
	d := NewDispatcher(r)

	for _, line := range []string{"", "   ", "\t\n"} {
		err := d.Handle(context.Background(), line, nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrNoCommand, apperrors.Code(err), "line=%q", line)
	}
	assert.Zero(t, h.calls)
}

func TestHandle_CommandNotFound(t *testing.T) {
	r, _ := newTestRegistry()
	d := NewDispatcher(r)

	err := d.Handle(context.Background(), "frobnicate now", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCommandNotFound, apperrors.Code(err))
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestHandle_PassesArgsToNamedHandlerOnly(t *testing.T) {
	r, _ := newTestRegistry()
	h1 := &mockHandler{name: "n1"}
	h2 := &mockHandler{name: "n2"}
	r.Register(h1)
	r.Register(h2)
	d := NewDispatcher(r)

	require.NoError(t, d.Handle(context.Background(), "n1 a  b", nil))

	assert.Equal(t, 1, h1.calls)
	assert.Equal(t, []string{"a", "b"}, h1.gotArgs)
	assert.Zero(t, h2.calls, "обработчик другой команды не должен вызываться")
}

func TestHandle_NoArgsGivesEmptySlice(t *testing.T) {
	r, _ := newTestRegistry()
	h := &mockHandler{name: "clear"}
	r.Register(h)

	require.NoError(t, NewDispatcher(r).Handle(context.Background(), "clear", nil))
	assert.Empty(t, h.gotArgs)
}

func TestCall_ContextUnavailable(t *testing.T) {
	r, _ := newTestRegistry()
	h := &mockHandler{name: "download", needState: true}
	r.Register(h)
	d := NewDispatcher(r)

	err := d.Call(context.Background(), Invocation{Name: "download", Args: []string{"u"}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrContextUnavailable, apperrors.Code(err))
	assert.Zero(t, h.calls, "handler не должен вызываться без состояния")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Command download requires shared state", appErr.Message)

	err = d.Call(context.Background(), Invocation{Name: "download", State: state.NewHandle(&state.State{})})
	require.NoError(t, err)
	assert.Equal(t, 1, h.calls)
}

func TestCall_AppErrorPassesThrough(t *testing.T) {
	r, _ := newTestRegistry()
	appErr := apperrors.NewAppError(apperrors.ErrMissingArgument, "Missing argument: url", nil)
	r.Register(&mockHandler{name: "download", err: appErr})

	err := NewDispatcher(r).Handle(context.Background(), "download", nil)
	assert.Same(t, appErr, err)
}

func TestCall_PlainErrorBecomesHandlerFault(t *testing.T) {
	r, _ := newTestRegistry()
	cause := errors.New("disk full")
	r.Register(&mockHandler{name: "x", err: cause})

	err := NewDispatcher(r).Handle(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrHandlerFault, apperrors.Code(err))
	assert.ErrorIs(t, err, cause)
}

func TestCall_PanicBecomesHandlerFaultWithTrace(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register(&mockHandler{name: "x", panicWith: "boom"})

	err := NewDispatcher(r).Handle(context.Background(), "x", nil)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrHandlerFault, appErr.Code)
	assert.Equal(t, "Command x crashed: boom", appErr.Message)
	assert.Contains(t, appErr.Trace, "goroutine")
}

package clearhandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/console"
)

func TestHandler_Execute(t *testing.T) {
	buf := console.NewBuffer()
	h := New(shared.NewEnv(buf, nil, ""))

	require.NoError(t, h.Execute(context.Background(), nil, nil))
	assert.Equal(t, "\x1B[2J\x1B[1;1H", buf.String())
}

func TestHandler_Execute_JSONWritesNothing(t *testing.T) {
	buf := console.NewBuffer()
	h := New(shared.NewEnv(buf, nil, "json"))

	require.NoError(t, h.Execute(context.Background(), nil, nil))
	assert.Empty(t, buf.String())
}

func TestHandler_Execute_RejectsArguments(t *testing.T) {
	buf := console.NewBuffer()
	h := New(shared.NewEnv(buf, nil, ""))

	err := h.Execute(context.Background(), []string{"all"}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidArgument))
	assert.Empty(t, buf.String())
}

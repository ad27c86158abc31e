package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	result := &Result{
		Status:   StatusError,
		Command:  "download",
		Error:    &ErrorInfo{Code: "COMMAND.MISSING_ARGUMENT", Message: "не указан URL"},
		Metadata: &Metadata{DurationMs: 1500},
	}

	require.NoError(t, NewTextWriter().Write(&buf, result))
	assert.Equal(t, "download: error\nError [COMMAND.MISSING_ARGUMENT]: не указан URL\nDuration: 1.5s\n", buf.String())
}

func TestTextWriter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "150ms", formatDuration(150))
	assert.Equal(t, "2.5s", formatDuration(2500))
	assert.Equal(t, "1m 5s", formatDuration(65000))
}

func TestNewWriter(t *testing.T) {
	assert.IsType(t, &JSONWriter{}, NewWriter("JSON"))
	assert.IsType(t, &TextWriter{}, NewWriter("text"))
	assert.IsType(t, &TextWriter{}, NewWriter("yaml"))
	assert.True(t, IsJSON("Json"))
	assert.False(t, IsJSON(""))
}

func TestRender(t *testing.T) {
	s, err := Render(NewTextWriter(), NewSuccess("clear", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "clear: success\n", s)
}

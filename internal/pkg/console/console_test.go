package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Compile-time проверки реализации интерфейса.
var (
	_ Console = (*Stream)(nil)
	_ Console = (*Buffer)(nil)
)

func TestStream_WriteAndWriteLine(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewStream(&out, &errOut)

	c.Write("a")
	c.WriteLine("b")
	c.Warn("old name")

	assert.Equal(t, "ab\n", out.String())
	assert.Equal(t, "WARNING: old name\n", errOut.String())
}

func TestStream_NoColorsForNonTerminal(t *testing.T) {
	c := NewStream(&bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, "Error!", c.Paint(ColorRed, "Error!"))
}

func TestStream_ColorsWhenEnabled(t *testing.T) {
	c := NewStream(&bytes.Buffer{}, &bytes.Buffer{})
	c.colors = true
	assert.Equal(t, "\x1B[91mError!\x1B[0m", c.Paint(ColorRed, "Error!"))
}

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	b.Write("1.0.0")
	b.WriteLine("")
	b.Warn("w")

	assert.Equal(t, "1.0.0\n", b.String())
	assert.Equal(t, []string{"w"}, b.Warnings())
	assert.Equal(t, "x", b.Paint(ColorGreen, "x"))

	b.Reset()
	assert.Empty(t, b.String())
	assert.Empty(t, b.Warnings())
}

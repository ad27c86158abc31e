package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "My Song", "My Song"},
		{"reserved", `AC/DC: "Back" <in> Black?*|`, "AC_DC_ _Back_ _in_ Black___"},
		{"control", "a\tb\x00c", "abc"},
		{"format chars", "a\u200bb\u200ec\ufeff", "abc"},
		{"spaces", "  many   spaces  ", "many spaces"},
		{"dots", "...hidden.", "hidden"},
		{"fullwidth", "ＡＢＣ", "ABC"},
		{"cyrillic", "Песня й ё", "Песня й ё"},
		{"empty", "", fallbackFilename},
		{"only reserved dots", " . . ", fallbackFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.title))
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("я", 150))
	assert.LessOrEqual(t, len(got), maxFilenameBytes)
	assert.Equal(t, strings.Repeat("я", maxFilenameBytes/2), got)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "a.mp3"), uniquePath(dir, "a", "mp3"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp3"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a (1).mp3"), nil, 0o600))
	assert.Equal(t, filepath.Join(dir, "a (2).mp3"), uniquePath(dir, "a", "mp3"))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	require.NoError(t, moveFile(src, dst))

	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestLargestFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.m4a"), []byte("1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.webm"), []byte("12345"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "huge.webm.part"), make([]byte, 100), 0o600))

	got, err := largestFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "big.webm"), got)

	_, err = largestFile(t.TempDir())
	assert.ErrorIs(t, err, errNothingDownloaded)
}

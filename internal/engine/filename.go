package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxFilenameBytes - ограничение длины имени без расширения.
// Большинство файловых систем допускают 255 байт на компонент пути.
const maxFilenameBytes = 200

// fallbackFilename используется, если от названия ничего не осталось.
const fallbackFilename = "download"

// SanitizeFilename превращает название медиа в безопасное имя файла:
// нормализует Unicode (NFKC), удаляет управляющие символы,
// заменяет зарезервированные символы на '_' и обрезает длину.
func SanitizeFilename(title string) string {
	t := transform.Chain(
		norm.NFKC,
		runes.Remove(runes.In(unicode.Cc)),
		runes.Remove(runes.In(unicode.Cf)),
		runes.Map(replaceReserved),
	)

	name, _, err := transform.String(t, title)
	if err != nil {
		name = title
	}

	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, " .")
	name = truncateUTF8(name, maxFilenameBytes)
	name = strings.TrimRight(name, " .")

	if name == "" {
		return fallbackFilename
	}
	return name
}

func replaceReserved(r rune) rune {
	switch r {
	case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		return '_'
	}
	return r
}

// truncateUTF8 обрезает строку до limit байт, не разрывая руны.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

// uniquePath возвращает путь, не совпадающий с существующим файлом:
// "name.mp3", затем "name (1).mp3", "name (2).mp3" и т.д.
func uniquePath(dir, name, ext string) string {
	candidate := filepath.Join(dir, name+"."+ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d).%s", name, i, ext))
	}
}

// moveFile перемещает файл. Если rename невозможен из-за разных
// файловых систем, файл копируется и исходник удаляется.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // путь сформирован движком
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // read-only

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644) //nolint:gosec // путь сформирован движком
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

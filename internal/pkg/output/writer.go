package output

import (
	"bytes"
	"io"
)

// Writer определяет интерфейс для форматирования результатов команд.
// Реализации: JSONWriter, TextWriter.
type Writer interface {
	// Write форматирует result и записывает в w.
	Write(w io.Writer, result *Result) error
}

// Render форматирует result в строку.
// Используется обработчиками, которые пишут в консоль, а не в io.Writer.
func Render(w Writer, result *Result) (string, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

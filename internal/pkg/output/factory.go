package output

import "strings"

// FormatJSON и FormatText - поддерживаемые форматы вывода.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewWriter создаёт Writer по указанному формату (без учёта регистра).
// При неизвестном формате возвращает TextWriter.
func NewWriter(format string) Writer {
	if IsJSON(format) {
		return NewJSONWriter()
	}
	return NewTextWriter()
}

// IsJSON сообщает, запрошен ли JSON формат.
func IsJSON(format string) bool {
	return strings.EqualFold(format, FormatJSON)
}

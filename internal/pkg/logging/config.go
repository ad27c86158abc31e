package logging

// Поддерживаемые форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Поддерживаемые уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Поддерживаемые типы вывода логов.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию для Config.
// Интерактивная оболочка по умолчанию логирует только предупреждения,
// чтобы служебные записи не перемешивались с приглашением ко вводу.
const (
	DefaultLevel      = LevelWarn
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "logs/dr-downloader.log"
	DefaultMaxSize    = 10 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config содержит настройки логирования.
type Config struct {
	// Format определяет формат вывода: "json" или "text".
	Format string

	// Level определяет минимальный уровень логирования.
	// Допустимые значения: "debug", "info", "warn", "error".
	Level string

	// Output определяет куда выводить логи: "stderr" или "file".
	Output string

	// FilePath задаёт путь к файлу логов (при output="file").
	FilePath string

	// MaxSize задаёт максимальный размер файла в мегабайтах перед ротацией.
	MaxSize int

	// MaxBackups задаёт количество backup файлов.
	MaxBackups int

	// MaxAge задаёт максимальный возраст backup файлов в днях.
	MaxAge int

	// Compress определяет сжимать ли backup файлы в gzip.
	Compress bool
}

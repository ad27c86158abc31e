// Package constants содержит константы, используемые в проекте dr-downloader.
// Константы сгруппированы по их функциональному назначению.
package constants

// Version - версия приложения. Переопределяется при сборке через
// -ldflags "-X github.com/Kargones/dr-downloader/internal/constants.Version=...".
var Version = "dev"

// PreCommitHash - хеш коммита сборки, задаётся через -ldflags аналогично Version.
var PreCommitHash = "unknown"

// AppName - имя приложения для логов, метрик и трейсов.
const AppName = "dr-downloader"

// Имена команд
const (
	// ActClear - очистка экрана консоли
	ActClear = "clear"
	// ActVersion - вывод версии приложения
	ActVersion = "version"
	// ActDownload - загрузка, конвертация и сохранение медиа
	ActDownload = "download"
	// ActDownloadAlias - устаревшее короткое имя команды download
	ActDownloadAlias = "dl"
	// ActToken - управление сохранённым токеном
	ActToken = "token"
	// ActHelp - список доступных команд
	ActHelp = "help"
)

// Подкоманды и флаги
const (
	// SubTokenSet - сохранить токен
	SubTokenSet = "set"
	// SubTokenGet - вывести сохранённый токен
	SubTokenGet = "get"
	// FlagNoNewline - вывод версии без перевода строки
	FlagNoNewline = "no-newline"
)

// TokenCacheKey - ключ, под которым токен хранится в кэше.
const TokenCacheKey = "token"

// Режимы работы цикла
const (
	// ModeInteractive - интерактивный режим (чтение строк из stdin)
	ModeInteractive = "interactive"
	// ModeBatch - однократное выполнение команды из аргументов
	ModeBatch = "batch"
)

// Константы вывода в консоль
const (
	// Prompt - приглашение ко вводу в интерактивном режиме
	Prompt = "Enter command: "
	// ClearScreen - ANSI последовательность очистки экрана и возврата курсора
	ClearScreen = "\x1B[2J\x1B[1;1H"
	// ErrorLabel - префикс строки с ошибкой
	ErrorLabel = "Error!"
	// DoneLabel - сообщение об успешной загрузке
	DoneLabel = "Done!"
)

// Константы диагностики
const (
	// DiagnosticsFile - файл, в который дописываются сведения о неудачных командах
	DiagnosticsFile = "error.txt"
)

// Коды завершения процесса
const (
	// ExitOK - нормальное завершение
	ExitOK = 0
	// ExitConfigError - ошибка загрузки конфигурации
	ExitConfigError = 5
	// ExitEngineError - не удалось инициализировать движок загрузки
	ExitEngineError = 6
	// ExitInitError - прочие ошибки инициализации
	ExitInitError = 7
	// ExitInputError - ошибка чтения stdin в интерактивном режиме
	ExitInputError = 8
)

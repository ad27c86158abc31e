// Package cache предоставляет персистентное key/value хранилище.
// Используется командой token для хранения учётных данных между запусками.
//
// Реализации: FileCache (YAML файл) и MSSQLCache (таблица в SQL Server).
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Cache - персистентное key/value хранилище строк.
type Cache interface {
	// Get возвращает значение и true, если ключ найден.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set сохраняет значение, перезаписывая прежнее.
	Set(ctx context.Context, key, value string) error
	// Close освобождает ресурсы хранилища.
	Close() error
}

// Поддерживаемые backends.
const (
	BackendFile  = "file"
	BackendMSSQL = "mssql"
)

// ErrUnknownBackend возвращается фабрикой для неизвестного backend.
var ErrUnknownBackend = errors.New("cache: unknown backend")

// ErrEmptyKey возвращается при пустом ключе.
var ErrEmptyKey = errors.New("cache: empty key")

// Config содержит настройки хранилища.
type Config struct {
	// Backend - "file" или "mssql".
	Backend string
	// FilePath - путь к YAML файлу для backend "file".
	FilePath string
	// MSSQL - параметры подключения для backend "mssql".
	MSSQL MSSQLOptions
}

// MSSQLOptions содержит параметры подключения к SQL Server.
type MSSQLOptions struct {
	Server   string
	Port     int
	User     string
	Password string
	Database string
	Table    string
	Timeout  time.Duration
	Encrypt  bool
}

// New создаёт хранилище для cfg.Backend.
// Для "mssql" устанавливает соединение и создаёт таблицу при отсутствии.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileCache(cfg.FilePath)
	case BackendMSSQL:
		return OpenMSSQL(ctx, cfg.MSSQL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

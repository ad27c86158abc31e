package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	// blank import для драйвера SQL Server
	_ "github.com/denisenkom/go-mssqldb"
)

// DefaultTable - таблица кэша по умолчанию.
const DefaultTable = "dbo.KeyValueCache"

// identPattern ограничивает имена схемы и таблицы: они подставляются в SQL
// текстом, поэтому допускаются только буквы, цифры и подчёркивание.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ErrInvalidTable возвращается для недопустимого имени таблицы.
var ErrInvalidTable = errors.New("cache: invalid table name")

// MSSQLCache хранит значения в таблице SQL Server.
type MSSQLCache struct {
	db    *sql.DB
	table string
}

// Compile-time проверка реализации интерфейса
var _ Cache = (*MSSQLCache)(nil)

// OpenMSSQL подключается к серверу, проверяет соединение и создаёт
// таблицу кэша при её отсутствии.
func OpenMSSQL(ctx context.Context, opts MSSQLOptions) (*MSSQLCache, error) {
	if opts.Server == "" {
		return nil, errors.New("cache: mssql server is required")
	}
	if opts.Port == 0 {
		opts.Port = 1433
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("cache: invalid mssql port %d", opts.Port)
	}
	if opts.Database == "" {
		opts.Database = "master"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	db, err := sql.Open("sqlserver", connString(opts))
	if err != nil {
		return nil, fmt.Errorf("cache: open mssql: %w", err)
	}

	c, err := newMSSQLCache(db, opts.Table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: ping mssql: %w", err)
	}
	if err := c.ensureTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// newMSSQLCache оборачивает уже открытое соединение.
func newMSSQLCache(db *sql.DB, table string) (*MSSQLCache, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return nil, err
	}
	return &MSSQLCache{db: db, table: quoted}, nil
}

// connString собирает DSN в URL форме sqlserver://. Учётные данные и
// параметры кодируются net/url, драйвер декодирует их при разборе.
func connString(opts MSSQLOptions) string {
	encrypt := "true"
	if !opts.Encrypt {
		encrypt = "disable"
	}
	query := url.Values{}
	query.Set("database", opts.Database)
	query.Set("encrypt", encrypt)
	query.Set("connection timeout", strconv.Itoa(int(opts.Timeout.Seconds())))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(opts.User, opts.Password),
		Host:     net.JoinHostPort(opts.Server, strconv.Itoa(opts.Port)),
		RawQuery: query.Encode(),
	}
	return u.String()
}

// quoteTable превращает "schema.table" или "table" в "[schema].[table]".
func quoteTable(table string) (string, error) {
	if table == "" {
		table = DefaultTable
	}
	parts := strings.Split(table, ".")
	if len(parts) == 1 {
		parts = []string{"dbo", parts[0]}
	}
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	for _, p := range parts {
		if !identPattern.MatchString(p) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTable, table)
		}
	}
	return "[" + parts[0] + "].[" + parts[1] + "]", nil
}

func (c *MSSQLCache) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`IF OBJECT_ID(N'%[1]s', N'U') IS NULL
CREATE TABLE %[1]s (
	CacheKey NVARCHAR(256) NOT NULL PRIMARY KEY,
	CacheValue NVARCHAR(MAX) NOT NULL,
	UpdatedAt DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME()
)`, c.table)
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("cache: create table %s: %w", c.table, err)
	}
	return nil
}

// Get читает значение по ключу.
func (c *MSSQLCache) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	var value string
	err := c.db.QueryRowContext(ctx,
		"SELECT CacheValue FROM "+c.table+" WHERE CacheKey = @p1", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache: select: %w", err)
	}
	return value, true, nil
}

// Set сохраняет значение через MERGE (вставка или обновление).
func (c *MSSQLCache) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query := "MERGE " + c.table + ` AS target
USING (SELECT @p1 AS CacheKey, @p2 AS CacheValue) AS source
ON target.CacheKey = source.CacheKey
WHEN MATCHED THEN UPDATE SET CacheValue = source.CacheValue, UpdatedAt = SYSUTCDATETIME()
WHEN NOT MATCHED THEN INSERT (CacheKey, CacheValue) VALUES (source.CacheKey, source.CacheValue);`
	if _, err := c.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("cache: merge: %w", err)
	}
	return nil
}

// Close закрывает соединение с сервером.
func (c *MSSQLCache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

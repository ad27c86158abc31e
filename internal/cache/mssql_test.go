package cache

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/denisenkom/go-mssqldb/msdsn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCache(t *testing.T) (*MSSQLCache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "ошибка создания sqlmock")

	c, err := newMSSQLCache(db, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return c, mock
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "[dbo].[KeyValueCache]", false},
		{"Tokens", "[dbo].[Tokens]", false},
		{"app.Tokens", "[app].[Tokens]", false},
		{"a.b.c", "", true},
		{"dbo.Tok;DROP", "", true},
		{"dbo.[x]", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := quoteTable(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnString_DriverSeesOriginalValues(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		database string
	}{
		{"plain", "app", "secret", "cache"},
		{"url specials", "app", "p@ss w+rd!", "cache"},
		{"dsn separators", "dom\\app", "p;a=ss", "my db"},
		{"braces and percent", "app", "{x}%41:/?#", "cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := connString(MSSQLOptions{
				Server:   "db.local",
				User:     tt.user,
				Password: tt.password,
				Port:     1433,
				Database: tt.database,
				Timeout:  15 * time.Second,
			})

			cfg, params, err := msdsn.Parse(dsn)
			require.NoError(t, err)
			assert.Equal(t, "db.local", cfg.Host)
			assert.Equal(t, uint64(1433), cfg.Port)
			assert.Equal(t, tt.user, cfg.User)
			assert.Equal(t, tt.password, cfg.Password)
			assert.Equal(t, tt.database, cfg.Database)
			assert.Equal(t, "disable", params["encrypt"])
			assert.Equal(t, "15", params["connection timeout"])
		})
	}
}

func TestMSSQLCache_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT CacheValue FROM [dbo].[KeyValueCache] WHERE CacheKey = @p1")

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantValue string
		wantOK    bool
		wantErr   bool
	}{
		{
			name: "значение найдено",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("token").
					WillReturnRows(sqlmock.NewRows([]string{"CacheValue"}).AddRow("abc"))
			},
			wantValue: "abc",
			wantOK:    true,
		},
		{
			name: "значение отсутствует",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("token").
					WillReturnRows(sqlmock.NewRows([]string{"CacheValue"}))
			},
		},
		{
			name: "ошибка сервера",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs("token").WillReturnError(errors.New("timeout"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock := newMockCache(t)
			tt.setupMock(mock)

			v, ok, err := c.Get(context.Background(), "token")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantValue, v)
				assert.Equal(t, tt.wantOK, ok)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMSSQLCache_Set(t *testing.T) {
	c, mock := newMockCache(t)
	mock.ExpectExec(regexp.QuoteMeta("MERGE [dbo].[KeyValueCache] AS target")).
		WithArgs("token", "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.Set(context.Background(), "token", "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCache_SetError(t *testing.T) {
	c, mock := newMockCache(t)
	mock.ExpectExec("MERGE").WillReturnError(errors.New("permission denied"))

	err := c.Set(context.Background(), "token", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestMSSQLCache_EnsureTable(t *testing.T) {
	c, mock := newMockCache(t)
	mock.ExpectExec(regexp.QuoteMeta("IF OBJECT_ID(N'[dbo].[KeyValueCache]', N'U') IS NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, c.ensureTable(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCache_Close(t *testing.T) {
	c, mock := newMockCache(t)
	mock.ExpectClose()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "повторный Close безопасен")
	assert.NoError(t, mock.ExpectationsWereMet())
}

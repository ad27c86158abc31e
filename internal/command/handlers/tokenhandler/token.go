// Package tokenhandler реализует команду token: сохранение и чтение
// учётного токена в персистентном кэше.
//
//	token set <value>
//	token get
package tokenhandler

import (
	"context"
	"time"

	"github.com/Kargones/dr-downloader/internal/cache"
	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/pkg/apperrors"
	"github.com/Kargones/dr-downloader/internal/pkg/logging"
	"github.com/Kargones/dr-downloader/internal/state"
)

// Data - JSON payload подкоманды get.
type Data struct {
	Token string `json:"token"`
}

// SetData - JSON payload подкоманды set. Значение токена не выводится.
type SetData struct {
	Stored bool `json:"stored"`
}

// Handler обрабатывает команду token.
type Handler struct {
	env   shared.Env
	cache cache.Cache
}

var _ command.Handler = (*Handler)(nil)

// New создаёт обработчик поверх хранилища c.
func New(env shared.Env, c cache.Cache) *Handler {
	return &Handler{env: env, cache: c}
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActToken
}

// Description возвращает описание команды.
func (h *Handler) Description() string {
	return "Store or print the access token (token set <value> | token get)"
}

// Execute выполняет подкоманду set или get.
func (h *Handler) Execute(ctx context.Context, args []string, _ *state.Handle) error {
	if len(args) == 0 {
		return shared.MissingSubcommand(constants.ActToken, constants.SubTokenSet, constants.SubTokenGet)
	}

	switch args[0] {
	case constants.SubTokenSet:
		return h.set(ctx, args[1:])
	case constants.SubTokenGet:
		return h.get(ctx, args[1:])
	default:
		return shared.UnknownSubcommand(constants.ActToken, args[0])
	}
}

func (h *Handler) set(ctx context.Context, args []string) error {
	started := time.Now()
	if len(args) == 0 {
		return shared.MissingArgument("value")
	}
	if len(args) > 1 {
		return shared.InvalidArgument(args[1])
	}

	if err := h.cache.Set(ctx, constants.TokenCacheKey, args[0]); err != nil {
		h.env.Logger.Error("не удалось сохранить токен", logging.KeyError, err.Error())
		return apperrors.NewAppError(apperrors.ErrCacheWrite, "Failed to store token", err)
	}
	// Значение токена в лог не пишется.
	h.env.Logger.Info("токен сохранён", logging.KeyCommand, constants.ActToken)

	if h.env.JSON() {
		return h.env.WriteJSON(ctx, constants.ActToken, started, SetData{Stored: true}, false)
	}
	h.env.Console.WriteLine("Token saved.")
	return nil
}

func (h *Handler) get(ctx context.Context, args []string) error {
	started := time.Now()
	if len(args) > 0 {
		return shared.InvalidArgument(args[0])
	}

	value, ok, err := h.cache.Get(ctx, constants.TokenCacheKey)
	if err != nil {
		h.env.Logger.Error("не удалось прочитать токен", logging.KeyError, err.Error())
		return apperrors.NewAppError(apperrors.ErrCacheRead, "Failed to read token", err)
	}
	if !ok {
		return apperrors.NewAppError(apperrors.ErrTokenNotSet, "Token is not set.", nil)
	}

	if h.env.JSON() {
		return h.env.WriteJSON(ctx, constants.ActToken, started, Data{Token: value}, false)
	}
	h.env.Console.WriteLine(value)
	return nil
}

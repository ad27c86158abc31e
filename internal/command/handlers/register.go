// Package handlers явно регистрирует все обработчики команд в реестре.
// Регистрация выполняется один раз при сборке приложения, до запуска оболочки.
package handlers

import (
	"github.com/Kargones/dr-downloader/internal/cache"
	"github.com/Kargones/dr-downloader/internal/command"
	"github.com/Kargones/dr-downloader/internal/command/handlers/clearhandler"
	"github.com/Kargones/dr-downloader/internal/command/handlers/downloadhandler"
	"github.com/Kargones/dr-downloader/internal/command/handlers/help"
	"github.com/Kargones/dr-downloader/internal/command/handlers/shared"
	"github.com/Kargones/dr-downloader/internal/command/handlers/tokenhandler"
	"github.com/Kargones/dr-downloader/internal/command/handlers/version"
	"github.com/Kargones/dr-downloader/internal/constants"
	"github.com/Kargones/dr-downloader/internal/pkg/metrics"
)

// Deps - зависимости, которые обработчики получают при создании.
type Deps struct {
	Env     shared.Env
	Cache   cache.Cache
	Metrics metrics.Collector
}

// RegisterAll регистрирует все команды в reg.
// Команда download дополнительно доступна под устаревшим именем dl.
func RegisterAll(reg *command.Registry, deps Deps) {
	reg.Register(clearhandler.New(deps.Env))
	reg.Register(version.New(deps.Env))
	reg.RegisterWithAlias(downloadhandler.New(deps.Env, deps.Metrics), constants.ActDownloadAlias)
	reg.Register(tokenhandler.New(deps.Env, deps.Cache))
	reg.Register(help.New(deps.Env, reg))
}

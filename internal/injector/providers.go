package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/arscene/internal/config"
	"github.com/zeusync/arscene/internal/core/assets"
	"github.com/zeusync/arscene/internal/core/events/bus"
	"github.com/zeusync/arscene/internal/core/observability/log"
	"github.com/zeusync/arscene/internal/core/placement"
	"github.com/zeusync/arscene/internal/core/session"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideEventBus,
	ProvideAnchors,
	wire.Bind(new(placement.AnchorFactory), new(*placement.LocalAnchors)),
	ProvideLoader,
	session.New,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, func()) {
	logger := log.New(cfg.Level())
	return logger, func() { _ = logger.Sync() }
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideAnchors() *placement.LocalAnchors {
	return placement.NewLocalAnchors()
}

func ProvideLoader(cfg *config.Config) assets.Loader {
	return assets.SchemeLoader{HTTP: assets.NewHTTPLoader(cfg.Model.LoadTimeout)}
}

//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/arscene/internal/config"
	"github.com/zeusync/arscene/internal/core/session"
)

func InitializeSession(cfg *config.Config) (*session.Session, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}

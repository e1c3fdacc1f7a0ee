package cli

import (
	"github.com/zeusync/arscene/internal/config"
	"github.com/zeusync/arscene/internal/core/observability/log"
)

// loadConfig reads --config (or the defaults) and applies --log-level.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if logLevel != "" {
		if _, err := log.ParseLevel(logLevel); err != nil {
			return nil, err
		}
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

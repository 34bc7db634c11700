// Package logging builds the zap logger used by the server and CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/hypermedia/internal/config"
)

// New creates a logger from cfg. Development loggers write colored console
// output with stack traces on warnings; production loggers write JSON.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := "info"
	if cfg.Level != "" {
		level = cfg.Level
	}
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = atom

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

package logging

import (
	"fmt"

	"github.com/grand-thief-cash/workplan/internal/application/core"
)

type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

// Create expects *logging.LoggingConfig.
func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	logCfg, ok := cfg.(*LoggingConfig)
	if !ok {
		return nil, fmt.Errorf("invalid config type for logging component (need *LoggingConfig)")
	}
	if logCfg == nil || !logCfg.Enabled {
		return nil, fmt.Errorf("logging component disabled")
	}
	return NewLoggerComponent(logCfg), nil
}

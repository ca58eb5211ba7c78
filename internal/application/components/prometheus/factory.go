package prometheus

import (
	"fmt"

	"github.com/grand-thief-cash/workplan/internal/application/core"
)

type Factory struct{}

func NewFactory() *Factory { return &Factory{} }

// Create expects *prometheus.Config.
func (f *Factory) Create(cfg interface{}) (core.Component, error) {
	promCfg, ok := cfg.(*Config)
	if !ok {
		return nil, fmt.Errorf("invalid config type for prometheus component (need *prometheus.Config)")
	}
	if promCfg == nil || !promCfg.Enabled {
		return nil, fmt.Errorf("prometheus component disabled")
	}
	return NewComponent(promCfg), nil
}

package registry

import (
	"github.com/grand-thief-cash/workplan/internal/application/components/prometheus"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
)

func init() {
	Register(consts.COMPONENT_PROMETHEUS, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Prometheus == nil || !cfg.Prometheus.Enabled {
			return false, nil, nil
		}
		comp, err := prometheus.NewFactory().Create(cfg.Prometheus)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})
}

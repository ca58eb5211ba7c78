package registry

import (
	"github.com/grand-thief-cash/workplan/internal/application/components/logging"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
)

func init() {
	Register(consts.COMPONENT_LOGGING, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.Logging == nil || !cfg.Logging.Enabled {
			return false, nil, nil
		}
		comp, err := logging.NewFactory().Create(cfg.Logging)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})
}

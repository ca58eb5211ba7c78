package registry

import (
	"github.com/grand-thief-cash/workplan/internal/application/components/postgresgorm"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
)

func init() {
	Register(consts.COMPONENT_POSTGRES_GORM, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.PostgresGORM == nil || !cfg.PostgresGORM.Enabled {
			return false, nil, nil
		}
		comp, err := postgresgorm.NewFactory().Create(cfg.PostgresGORM)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})
}

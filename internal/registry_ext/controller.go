package registry_ext

import (
	"github.com/grand-thief-cash/workplan/internal/api"
	appconsts "github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/application/registry"
	"github.com/grand-thief-cash/workplan/internal/consts"
)

func init() {
	registry.RegisterAuto(func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, api.NewSlotController(), nil
	})
	registry.RegisterAuto(func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, api.NewTaskController(), nil
	})
	registry.RegisterAuto(func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		return true, api.NewTimeLogController(), nil
	})

	// The HTTP server resolves controllers when it mounts routes, so it must
	// start after them.
	registry.ExtendRuntimeDependencies(appconsts.COMPONENT_HTTP_SERVER,
		consts.COMP_CTRL_SLOT,
		consts.COMP_CTRL_TASK,
		consts.COMP_CTRL_TIMELOG,
	)
}

package registry

import (
	"github.com/grand-thief-cash/workplan/internal/application/components/http_server"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
)

func init() {
	Register(consts.COMPONENT_HTTP_SERVER, func(cfg *config.AppConfig, c *core.Container) (bool, core.Component, error) {
		if cfg.HTTPServer == nil || !cfg.HTTPServer.Enabled {
			return false, nil, nil
		}
		if cfg.APPInfo != nil {
			cfg.HTTPServer.ServiceName = cfg.APPInfo.APPName
		}
		comp, err := http_server.NewFactory(c).Create(cfg.HTTPServer)
		if err != nil {
			return true, nil, err
		}
		return true, comp, nil
	})
}

package api

import (
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/grand-thief-cash/workplan/internal/application/components/http_server"
	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/consts"
)

// mounter is implemented by every controller in this package.
type mounter interface {
	Mount(r chi.Router)
}

func init() {
	http_server.RegisterRoutes(func(r chi.Router, c *core.Container) error {
		for _, name := range []string{
			consts.COMP_CTRL_SLOT,
			consts.COMP_CTRL_TASK,
			consts.COMP_CTRL_TIMELOG,
		} {
			comp, err := c.Resolve(name)
			if err != nil {
				return fmt.Errorf("resolve controller %s: %w", name, err)
			}
			m, ok := comp.(mounter)
			if !ok {
				return fmt.Errorf("component %s does not mount routes", name)
			}
			m.Mount(r)
		}
		return nil
	})
}

package registry

import (
	"log"
	"sync"

	"github.com/grand-thief-cash/workplan/internal/application/core"
)

// runtimeDepExtMap stores extra runtime dependency edges applied AFTER
// components are built & registered but BEFORE lifecycle StartAll sorts them.
var (
	runtimeDepExtMap = map[string][]string{}
	runtimeDepExtMu  sync.Mutex
)

// ExtendRuntimeDependencies declares that component `target` additionally
// depends on `deps` for start/stop ordering. Must be declared before
// BuildAndRegisterAll runs (usually init time). It does not influence build
// order of builders; use RegisterWithDeps for that.
func ExtendRuntimeDependencies(target string, deps ...string) {
	if target == "" || len(deps) == 0 {
		return
	}
	runtimeDepExtMu.Lock()
	defer runtimeDepExtMu.Unlock()
	runtimeDepExtMap[target] = append(runtimeDepExtMap[target], deps...)
}

func applyRuntimeDepExtensions(c *core.Container) {
	runtimeDepExtMu.Lock()
	defer runtimeDepExtMu.Unlock()
	if len(runtimeDepExtMap) == 0 {
		return
	}
	for target, extra := range runtimeDepExtMap {
		comp, err := c.Resolve(target)
		if err != nil {
			log.Printf("registry: runtime dep extension target %s not registered (skipped): %v", target, err)
			continue
		}
		if extender, ok := comp.(interface{ AddDependencies(...string) }); ok {
			extender.AddDependencies(extra...)
			log.Printf("registry: applied runtime dependency extension: %s += %v", target, extra)
		} else {
			log.Printf("registry: component %s does not support AddDependencies; extension skipped", target)
		}
	}
	// clear to avoid re-applying if BuildAndRegisterAll is invoked twice
	runtimeDepExtMap = map[string][]string{}
}

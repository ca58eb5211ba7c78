package hooks

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type HookFunc func(ctx context.Context) error

// Phase names a lifecycle stage hooks attach to.
type Phase string

const (
	BeforeStart    Phase = "before_start"
	AfterStart     Phase = "after_start"
	BeforeShutdown Phase = "before_shutdown"
	AfterShutdown  Phase = "after_shutdown"
)

type Hook struct {
	Name     string
	Phase    Phase
	Function HookFunc
	Priority int // lower runs first
}

type Manager struct {
	hooks map[Phase][]*Hook
	mutex sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{hooks: make(map[Phase][]*Hook)}
}

func (m *Manager) Register(hook *Hook) error {
	if hook == nil {
		return fmt.Errorf("hook cannot be nil")
	}
	if hook.Function == nil {
		return fmt.Errorf("hook function cannot be nil")
	}
	if !isValidPhase(hook.Phase) {
		return fmt.Errorf("invalid hook phase: %s", hook.Phase)
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hooks[hook.Phase] = append(m.hooks[hook.Phase], hook)
	sort.SliceStable(m.hooks[hook.Phase], func(i, j int) bool {
		return m.hooks[hook.Phase][i].Priority < m.hooks[hook.Phase][j].Priority
	})
	return nil
}

func (m *Manager) Execute(ctx context.Context, phase Phase) error {
	m.mutex.RLock()
	hooks := make([]*Hook, len(m.hooks[phase]))
	copy(hooks, m.hooks[phase])
	m.mutex.RUnlock()
	for _, hook := range hooks {
		if err := hook.Function(ctx); err != nil {
			return fmt.Errorf("hook %s failed: %w", hook.Name, err)
		}
	}
	return nil
}

func isValidPhase(phase Phase) bool {
	switch phase {
	case BeforeStart, AfterStart, BeforeShutdown, AfterShutdown:
		return true
	}
	return false
}

var globalHookManager = NewManager()

// RegisterHook registers a hook on the global manager.
func RegisterHook(name string, phase Phase, function HookFunc, priority int) error {
	return globalHookManager.Register(&Hook{Name: name, Phase: phase, Function: function, Priority: priority})
}

func ExecuteHooks(ctx context.Context, phase Phase) error {
	return globalHookManager.Execute(ctx, phase)
}

func GetGlobalHookManager() *Manager { return globalHookManager }

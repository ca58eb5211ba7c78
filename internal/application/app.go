package application

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/grand-thief-cash/workplan/internal/application/autowire"
	"github.com/grand-thief-cash/workplan/internal/application/config"
	"github.com/grand-thief-cash/workplan/internal/application/consts"
	"github.com/grand-thief-cash/workplan/internal/application/core"
	"github.com/grand-thief-cash/workplan/internal/application/hooks"
	"github.com/grand-thief-cash/workplan/internal/application/registry"
)

type App struct {
	container        *core.Container
	lifecycleManager *core.LifecycleManager
	configManager    *config.ConfigManager

	bootOnce sync.Once
	bootErr  error
	booted   bool

	shutdownTimeout time.Duration
}

func NewApp(env string, configPath string) *App {
	abs := configPath
	if p, err := filepath.Abs(configPath); err == nil {
		abs = p
	}
	container := core.NewContainer()
	// Use the global hook manager so default hooks registered in init() are effective.
	lm := core.NewLifecycleManagerWithManager(container, hooks.GetGlobalHookManager())
	return &App{
		configManager:    config.NewConfigManager(env, abs),
		container:        container,
		lifecycleManager: lm,
		shutdownTimeout:  30 * time.Second,
	}
}

var (
	defaultApp  *App
	defaultOnce sync.Once
)

// GetApp returns the process-wide App, configured from WORKPLAN_ENV and
// WORKPLAN_CONFIG environment variables.
func GetApp() *App {
	defaultOnce.Do(func() {
		env := os.Getenv("WORKPLAN_ENV")
		path := os.Getenv("WORKPLAN_CONFIG")
		if path == "" {
			path = consts.DEFAULT_CONFIG_PATH
		}
		defaultApp = NewApp(env, path)
	})
	return defaultApp
}

// SetShutdownTimeout customizes the graceful shutdown bound.
func (app *App) SetShutdownTimeout(d time.Duration) { app.shutdownTimeout = d }

// SetBizConfig forwards the project config pointer to the loader; call
// before Run.
func (app *App) SetBizConfig(b any) { app.configManager.SetBizConfig(b) }

func (app *App) boot() error {
	app.bootOnce.Do(func() {
		if err := app.configManager.LoadConfig(); err != nil {
			app.bootErr = fmt.Errorf("load config failed: %w", err)
			return
		}
		if err := app.registerComponents(); err != nil {
			app.bootErr = fmt.Errorf("register components failed: %w", err)
			return
		}
		app.booted = true
	})
	return app.bootErr
}

func (app *App) registerComponents() error {
	cfg := app.configManager.GetConfig()
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	// Each component self-registers its builder in a registry/*.go init().
	if err := registry.BuildAndRegisterAll(cfg, app.container); err != nil {
		return err
	}
	// Field injection after everything is registered.
	if err := autowire.InjectAll(app.container); err != nil {
		return err
	}
	return nil
}

func (app *App) GetComponent(name string) (core.Component, error) {
	return app.container.Resolve(name)
}

func (app *App) GetConfig() *config.AppConfig {
	if app.configManager == nil {
		return nil
	}
	return app.configManager.GetConfig()
}

func (app *App) AddHook(name string, phase hooks.Phase, fn hooks.HookFunc, priority int) error {
	return app.lifecycleManager.AddHook(name, phase, fn, priority)
}

// Run blocks until SIGINT/SIGTERM, then shuts components down gracefully.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.RunWithContext(ctx)
}

// RunWithContext starts components and blocks until the context is done,
// then performs graceful shutdown.
func (app *App) RunWithContext(ctx context.Context) error {
	if err := app.boot(); err != nil {
		return err
	}
	if err := app.lifecycleManager.StartAll(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	app.lifecycleManager.StopAll(context.Background())
	return nil
}

func (app *App) Shutdown(ctx context.Context) {
	app.lifecycleManager.StopAll(ctx)
}

package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/providers"
	"github.com/km-arc/go-container/framework/routing"
)

// Application is the top-level kernel. It embeds the resolution engine
// so user code can call app.Bind, app.Singleton, app.Get directly, and
// routes deferred-provider loading through the registry.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates and bootstraps the application: a fresh engine plus the
// framework core providers, in registration order.
func New(envFiles ...string) (*Application, error) {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.RoutingServiceProvider{},
	} {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all eager providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Resolve goes through the provider registry, so deferred providers
// load on first use.
func (a *Application) Resolve(alias string, opts ...container.GetOption) (any, error) {
	return a.Providers.Resolve(alias, opts...)
}

// Config resolves *config.Config from the engine.
func (a *Application) Config() (*config.Config, error) {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Router resolves *routing.Router from the engine.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	router, err := a.Router()
	if err != nil {
		return err
	}

	addr := cfg.Addr()
	fmt.Printf("%s listening on http://localhost%s  [%s]\n", cfg.App.Name, addr, cfg.App.Env)
	return http.ListenAndServe(addr, router)
}

// MustRun is Run for main functions that have nothing better to do
// with the error.
func (a *Application) MustRun() {
	if err := a.Run(); err != nil {
		log.Fatalf("app: %v", err)
	}
}

// Environment returns the APP_ENV value, or "" when config cannot be
// resolved.
func (a *Application) Environment() string {
	cfg, err := a.Config()
	if err != nil {
		return ""
	}
	return cfg.App.Env
}

func (a *Application) IsLocal() bool      { return a.Environment() == "local" }
func (a *Application) IsProduction() bool { return a.Environment() == "production" }
func (a *Application) IsTesting() bool    { return a.Environment() == "testing" }

package providers

import (
	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads configuration from .env and binds it as
// a singleton under "config".
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	envFiles := p.EnvFiles
	return app.Singleton("config", func(c *container.Container, _ container.Args) (any, error) {
		return config.Load(envFiles...), nil
	}, nil)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router as a singleton under
// "router".
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Singleton("router", func(c *container.Container, _ container.Args) (any, error) {
		return routing.New(), nil
	}, nil)
}

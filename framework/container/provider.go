package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related definitions behind a two-phase
// lifecycle: Register binds, Boot runs once everything is bound.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Singleton("logger", func(c *container.Container, _ container.Args) (any, error) {
//	        cfg, err := container.Resolve[*config.Config](c, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return logging.New(cfg), nil
//	    }, nil)
//	}
type ServiceProvider interface {
	// Register binds definitions into the engine. Do not resolve
	// other aliases here — use Boot for that.
	Register(app *Container) error

	// Boot is called after all providers are registered; any alias
	// may be resolved here.
	Boot(app *Container) error

	// Provides returns the aliases this provider registers; used for
	// deferred loading. Empty means always eager.
	Provides() []string

	// IsDeferred reports whether the provider loads lazily, on the
	// first registry Resolve of one of its Provides aliases.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op base; override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of providers,
// including deferred ones. Deferred loading happens at the registry's
// Resolve: interception inside the engine would poison the
// resolved-storage memo and the active chain, so the registry sits in
// front instead.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // alias → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately (and
// boot immediately when the registry is already booted); deferred ones
// only record their aliases.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}

	if provider.IsDeferred() {
		for _, alias := range provider.Provides() {
			r.deferred[alias] = provider
		}
		return nil
	}

	r.registered[provider] = true
	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)

	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// Boot runs the Boot phase on all eager providers, once.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

// Resolve loads the deferred provider owning alias, if any, then
// resolves through the engine.
func (r *ProviderRegistry) Resolve(alias string, opts ...GetOption) (any, error) {
	if provider, ok := r.deferred[alias]; ok {
		if err := r.load(provider); err != nil {
			return nil, err
		}
	}
	return r.app.Get(alias, opts...)
}

// load performs the real registration (and boot, when the registry is
// already booted) of a deferred provider and forgets its aliases.
func (r *ProviderRegistry) load(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true
	for _, alias := range provider.Provides() {
		delete(r.deferred, alias)
	}
	if err := provider.Register(r.app); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)
	if r.booted {
		return provider.Boot(r.app)
	}
	return nil
}

// Package container is a general-purpose dependency-resolution
// engine. Callers register how to produce values for named aliases —
// factories, singletons, literal values, wildcard patterns — and later
// retrieve fully-resolved values, with the engine performing on-demand
// construction, result caching, and circular-dependency detection.
//
// # Anatomy
//
// An alias is resolved in four steps: the engine finds the storage
// backend owning the alias (or synthesizes a build-from-scratch
// definition), the backend yields a Definition, the Definition's
// extraction parameter is handed to the matching Extractor strategy,
// and the raw result runs through the resolution-callback pipeline.
// Every nested dependency joins a per-call chain; an alias appearing
// twice on the chain fails fast with ErrCircular.
//
// # Backends
//
// Four backends ship by default, probed in this order:
//
//   - factory   — re-extracts on every Get, nothing cached
//   - singleton — extracts once, caches the result per alias
//   - values    — raw values, stored and returned verbatim; no
//     extraction runs, so resolution callbacks do not fire
//   - wildcards — glob patterns matched against the requested alias
//
// The same alias may live in several backends; the probe order above
// decides. The winning backend is memoized per alias and never
// invalidated, so re-registering the alias in a different backend
// later is not reflected — a deliberate staleness trade-off.
//
// # Registering
//
//	c := container.New()
//
//	// Factory: a fresh value on every Get
//	_ = c.Bind("request-id", func(c *container.Container, _ container.Args) (any, error) {
//	    return uuid.NewString(), nil
//	}, nil)
//
//	// Singleton: extracted once
//	_ = c.Singleton("config", func(c *container.Container, _ container.Args) (any, error) {
//	    return config.Load(), nil
//	}, nil)
//
//	// Literal value
//	_ = c.Instance("version", "1.4.2")
//
//	// Wildcard: one handler for a whole namespace
//	_ = c.Wildcard("repo.*", func(c *container.Container, alias string) (any, error) {
//	    return repositoryFor(alias), nil
//	})
//
// The fluent builder covers the remaining shapes — registered type
// names with alias-referencing constructor arguments, alias-to-alias
// references, per-definition callbacks, explicit target backends:
//
//	_ = c.Define("report").
//	    Build("report", container.Args{"db": container.Ref("db")}).
//	    In(container.StorageFactory).
//	    Register()
//
// # Resolving
//
//	v, err := c.Get("config")
//	v, err := c.Get("cache", container.FromStorage("singleton"))
//	v, err := c.Get("report", container.WithArguments(container.Args{"rows": 10}))
//	v, err := c.Get("maybe", container.WithoutMake()) // NotFound instead of building
//	cfg, err := container.Resolve[*config.Config](c, "config")
//
// Compound keys give an indexed surface over the same engine, with
// "storage::alias" notation falling back to the singleton backend:
//
//	_ = c.SetKey("values::x", 5)
//	v, _ := c.GetKey("values::x") // 5
//
// # Concurrency
//
// The engine is synchronous and holds unguarded mutable state,
// including the per-call dependency chain; it is not safe for
// concurrent use by multiple goroutines without external
// synchronization. Custom extractors must recurse through
// ExtractDependency only — resetting the chain mid-call defeats cycle
// detection.
package container

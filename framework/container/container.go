package container

// Container is the resolution engine: it locates the backend owning an
// alias (or synthesizes a build-from-scratch definition), dispatches
// the matching extractor, applies resolution callbacks, and tracks the
// active dependency chain.
//
// The engine holds mutable shared state with no locking discipline —
// registries, the resolved-storage memo, the chain, callbacks. It is
// not safe for concurrent use by multiple goroutines without external
// synchronization; resolution is synchronous and either completes or
// fails before the caller regains control.
type Container struct {
	storages     map[string]Storage
	storageOrder []string // probe order = insertion order
	extractors   map[string]Extractor

	// alias → winning backend key, memoized on first probe. Never
	// invalidated: once an alias resolves to backend X, later
	// re-registration elsewhere is not reflected.
	resolvedStorage map[string]string

	chain *dependencyChain

	globalResolver ResolutionCallback
	aliasResolvers map[string]ResolutionCallback

	types map[string]TypeConstructor
	funcs map[string]Callable
}

// New creates an engine with the default backends (factory, singleton,
// values, wildcards — in that probe order) and the five extractors,
// and binds itself under the "container" alias in the values backend.
func New() *Container {
	c := &Container{
		storages:        make(map[string]Storage),
		extractors:      make(map[string]Extractor),
		resolvedStorage: make(map[string]string),
		chain:           newDependencyChain(),
		aliasResolvers:  make(map[string]ResolutionCallback),
		types:           make(map[string]TypeConstructor),
		funcs:           make(map[string]Callable),
	}
	for _, s := range []Storage{
		newFactoryStorage(),
		newSingletonStorage(),
		newValueStorage(),
		newWildcardStorage(),
	} {
		_ = c.AddStorage(s)
	}
	for _, e := range []Extractor{
		CallableExtractor{},
		TypeExtractor{},
		ContainerExtractor{},
		ValueExtractor{},
		WildcardExtractor{},
	} {
		_ = c.AddExtractor(e)
	}
	_ = c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// AddStorage registers a backend under its StorageKey. Registering a
// second backend under an occupied key fails and leaves the first in
// place.
func (c *Container) AddStorage(s Storage) error {
	key := s.StorageKey()
	if _, dup := c.storages[key]; dup {
		return DuplicateKeyError{Registry: "storage", Key: key}
	}
	if aware, ok := s.(containerAware); ok {
		aware.attach(c)
	}
	c.storages[key] = s
	c.storageOrder = append(c.storageOrder, key)
	return nil
}

// AddExtractor registers an extractor under its Key; duplicates fail.
func (c *Container) AddExtractor(e Extractor) error {
	key := e.Key()
	if _, dup := c.extractors[key]; dup {
		return DuplicateKeyError{Registry: "extractor", Key: key}
	}
	c.extractors[key] = e
	return nil
}

// StorageBackend returns the backend registered under name.
func (c *Container) StorageBackend(name string) (Storage, bool) {
	s, ok := c.storages[name]
	return s, ok
}

// StorageKeys returns the backend keys in probe order.
func (c *Container) StorageKeys() []string {
	out := make([]string, len(c.storageOrder))
	copy(out, c.storageOrder)
	return out
}

// ExtractorFor returns the extractor registered under key.
func (c *Container) ExtractorFor(key string) (Extractor, bool) {
	e, ok := c.extractors[key]
	return e, ok
}

// RegisterType registers a constructor for a type name, making the
// name resolvable by the type extractor and by Make.
func (c *Container) RegisterType(name string, ctor TypeConstructor) error {
	if name == "" || ctor == nil {
		return InvalidParameterError{Reason: "type registration needs a name and a constructor"}
	}
	if _, dup := c.types[name]; dup {
		return DuplicateKeyError{Registry: "type", Key: name}
	}
	c.types[name] = ctor
	return nil
}

// RegisteredType returns the constructor registered for name.
func (c *Container) RegisteredType(name string) (TypeConstructor, bool) {
	ctor, ok := c.types[name]
	return ctor, ok
}

// RegisterFunc registers a named callable for callable parameters
// whose target is a string.
func (c *Container) RegisterFunc(name string, fn Callable) error {
	if name == "" || fn == nil {
		return InvalidParameterError{Reason: "func registration needs a name and a function"}
	}
	if _, dup := c.funcs[name]; dup {
		return DuplicateKeyError{Registry: "func", Key: name}
	}
	c.funcs[name] = fn
	return nil
}

// RegisteredFunc returns the callable registered under name.
func (c *Container) RegisteredFunc(name string) (Callable, bool) {
	fn, ok := c.funcs[name]
	return fn, ok
}

// ── Registration sugar ────────────────────────────────────────────────────────

// Bind registers a callable definition in the factory backend: a
// fresh extraction on every Get.
func (c *Container) Bind(alias string, target any, args map[string]any) error {
	return c.Define(alias).Call(target, args).In(StorageFactory).Register()
}

// Singleton registers a callable definition in the singleton backend:
// extracted once, cached thereafter.
func (c *Container) Singleton(alias string, target any, args map[string]any) error {
	return c.Define(alias).Call(target, args).Register()
}

// Instance stores a pre-built value in the values backend.
func (c *Container) Instance(alias string, value any) error {
	s, ok := c.storages[StorageValue]
	if !ok {
		return StorageNotFoundError{Storage: StorageValue}
	}
	return s.Store(alias, value)
}

// Wildcard registers a pattern handler in the wildcard backend.
func (c *Container) Wildcard(pattern string, handler WildcardHandler) error {
	return c.Define(pattern).Wildcard(pattern, handler).Register()
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves an alias. By default every registered backend is probed
// in insertion order and, when no backend knows the alias, the engine
// falls back to building a new instance (Make semantics, nothing
// cached). Options narrow this: FromStorage pins a backend,
// WithArguments supplies call-time argument overrides, WithoutMake
// turns the unbound case into a NotFound failure.
//
// The chain is cleared on entry and again when Get returns, success or
// failure, so top-level calls always start clean.
func (c *Container) Get(alias string, opts ...GetOption) (any, error) {
	o := applyGetOptions(opts)
	c.chain.clear()
	defer c.chain.clear()
	return c.getDependency(alias, o.storage, o.args, o.makeIfNotAvailable)
}

// Has reports whether an alias is known. With a storage name it checks
// only that backend; otherwise it probes every backend in insertion
// order, memoizing the winning backend per alias. The memo is never
// invalidated (see the package docs for the staleness caveat).
func (c *Container) Has(alias string, storage ...string) bool {
	if len(storage) > 0 && storage[0] != "" {
		s, ok := c.storages[storage[0]]
		return ok && s.Has(alias)
	}
	if key, ok := c.resolvedStorage[alias]; ok {
		return c.storages[key].Has(alias)
	}
	_, err := c.probeStorage(alias)
	return err == nil
}

// Make builds a fresh instance of the alias through its registered
// type constructor, bypassing every backend. Nothing is cached. It is
// both the public "construct regardless of bindings" entry and Get's
// fallback for unbound aliases.
func (c *Container) Make(alias string, args map[string]any) (any, error) {
	c.chain.clear()
	defer c.chain.clear()
	if err := c.chain.append(alias); err != nil {
		return nil, err
	}
	return c.makeNew(alias, args)
}

// ExtractDependency resolves dependencyAlias as a nested step of
// extracting def. It appends to the active chain (failing fast on a
// cycle) and does not clear it, which is exactly why it is the only
// sanctioned recursion path for extractors.
func (c *Container) ExtractDependency(def *Definition, dependencyAlias string) (any, error) {
	return c.getDependency(dependencyAlias, "", nil, true)
}

// Resolved registers a post-resolution callback. Called with a single
// ResolutionCallback it registers the global callback, fired after
// every extraction. Called with a string key and a callback it
// registers a per-alias callback. Any other shape fails with an
// invalid-parameter error.
func (c *Container) Resolved(key any, callback ...ResolutionCallback) error {
	if len(callback) == 0 {
		cb, ok := toResolutionCallback(key)
		if !ok {
			return InvalidParameterError{Reason: "Resolved with one argument expects a ResolutionCallback"}
		}
		c.globalResolver = cb
		return nil
	}
	alias, ok := key.(string)
	if !ok {
		return InvalidParameterError{Reason: "Resolved callback key must be a string alias"}
	}
	if len(callback) > 1 {
		return InvalidParameterError{Reason: "Resolved accepts a single callback per alias"}
	}
	c.aliasResolvers[alias] = callback[0]
	return nil
}

func toResolutionCallback(v any) (ResolutionCallback, bool) {
	switch cb := v.(type) {
	case ResolutionCallback:
		return cb, cb != nil
	case func(c *Container, value any) (any, bool):
		return cb, cb != nil
	}
	return nil, false
}

// ── Internals ────────────────────────────────────────────────────────────────

// getDependency is the nested resolution step: every resolved alias —
// top-level or recursive — passes through here exactly once per
// top-level call, appending itself to the chain.
func (c *Container) getDependency(alias, storageName string, args map[string]any, makeIfNotAvailable bool) (any, error) {
	if err := c.chain.append(alias); err != nil {
		return nil, err
	}

	if storageName == "" {
		s, err := c.lookupStorage(alias)
		if err != nil {
			// Unknown everywhere: build on demand if allowed. This
			// path bypasses the backends entirely, so nothing is
			// memoized or cached.
			if makeIfNotAvailable {
				return c.makeNew(alias, args)
			}
			return nil, err
		}
		return c.storageGet(s, alias, args)
	}

	s, ok := c.storages[storageName]
	if !ok {
		return nil, StorageNotFoundError{Storage: storageName}
	}
	return c.storageGet(s, alias, args)
}

// storageGet delegates a read, routing call-time arguments to backends
// that take them.
func (c *Container) storageGet(s Storage, alias string, args map[string]any) (any, error) {
	if len(args) > 0 {
		if as, ok := s.(argStorage); ok {
			return as.getWithArguments(alias, args)
		}
	}
	return s.Get(alias)
}

// lookupStorage returns the backend owning alias, consulting the memo
// before probing.
func (c *Container) lookupStorage(alias string) (Storage, error) {
	if key, ok := c.resolvedStorage[alias]; ok {
		return c.storages[key], nil
	}
	return c.probeStorage(alias)
}

// probeStorage walks the backends in insertion order, short-circuits
// on the first Has, and memoizes the winner.
func (c *Container) probeStorage(alias string) (Storage, error) {
	for _, key := range c.storageOrder {
		s := c.storages[key]
		if s.Has(alias) {
			c.resolvedStorage[alias] = key
			return s, nil
		}
	}
	return nil, NotFoundError{Alias: alias}
}

// makeNew synthesizes a transient build-new-instance definition and
// extracts it directly. The caller has already appended alias to the
// chain.
func (c *Container) makeNew(alias string, args map[string]any) (any, error) {
	p, err := NewTypeParameter(alias, args, false)
	if err != nil {
		return nil, err
	}
	def, err := NewDefinition(alias, p, ExtractorType)
	if err != nil {
		return nil, err
	}
	// args are already baked into the parameter; no overrides needed.
	return c.extract(def, alias, nil)
}

// extract dispatches the definition's extractor and runs the callback
// pipeline on the result.
func (c *Container) extract(def *Definition, alias string, args map[string]any) (any, error) {
	ext, ok := c.extractors[def.ExtractorKey()]
	if !ok {
		return nil, UnknownExtractorError{Key: def.ExtractorKey()}
	}
	if !ext.IsValidExtractionParameter(def.Parameter()) {
		return nil, ExtractorMismatchError{
			Extractor: def.ExtractorKey(),
			Parameter: def.Parameter().Kind(),
		}
	}
	v, err := ext.Extract(c, def, alias, args)
	if err != nil {
		return nil, err
	}
	return c.applyResolvers(def, alias, v), nil
}

// applyResolvers runs per-definition, then global, then per-alias
// callbacks; each may replace the value, and declining (ok == false)
// keeps the prior result.
func (c *Container) applyResolvers(def *Definition, alias string, v any) any {
	if cb := def.Resolver(); cb != nil {
		if nv, ok := cb(c, v); ok {
			v = nv
		}
	}
	if c.globalResolver != nil {
		if nv, ok := c.globalResolver(c, v); ok {
			v = nv
		}
	}
	if cb, ok := c.aliasResolvers[alias]; ok && cb != nil {
		if nv, ok := cb(c, v); ok {
			v = nv
		}
	}
	return v
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Resolve resolves an alias and type-asserts the result.
func Resolve[T any](c *Container, alias string, opts ...GetOption) (T, error) {
	var zero T
	v, err := c.Get(alias, opts...)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, InvalidParameterError{
			Reason: "alias " + alias + " did not resolve to the requested type",
		}
	}
	return typed, nil
}

// MustResolve is Resolve for wiring code where a failure is a
// programming error; it panics on any resolution or type failure.
func MustResolve[T any](c *Container, alias string, opts ...GetOption) T {
	v, err := Resolve[T](c, alias, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

package container

// ResolutionCallback runs after an extraction and may replace the
// produced value. Return (replacement, true) to replace; returning
// false leaves the prior result unchanged.
type ResolutionCallback func(c *Container, value any) (any, bool)

// ── Definition ────────────────────────────────────────────────────────────────

// Definition binds an alias to an extraction parameter, an extractor
// key, and an optional per-definition resolution callback. A backend
// owns the definitions stored in it; the engine owns the transient
// definitions it synthesizes for build-on-demand requests.
type Definition struct {
	alias     string
	parameter Parameter
	extractor string
	resolver  ResolutionCallback
}

// NewDefinition validates the three required pieces eagerly. The
// extractor key is checked against the engine's registry at extraction
// time, not here, so definitions can be built before the engine.
func NewDefinition(alias string, p Parameter, extractorKey string) (*Definition, error) {
	if alias == "" {
		return nil, InvalidParameterError{Reason: "definition alias is empty"}
	}
	if p == nil {
		return nil, InvalidParameterError{Reason: "definition parameter is nil"}
	}
	if extractorKey == "" {
		return nil, InvalidParameterError{Reason: "definition extractor key is empty"}
	}
	return &Definition{alias: alias, parameter: p, extractor: extractorKey}, nil
}

// Alias returns the alias this definition was registered under.
func (d *Definition) Alias() string { return d.alias }

// Parameter returns the extraction parameter.
func (d *Definition) Parameter() Parameter { return d.parameter }

// ExtractorKey returns the selected extractor's registry key.
func (d *Definition) ExtractorKey() string { return d.extractor }

// Resolver returns the per-definition callback, or nil.
func (d *Definition) Resolver() ResolutionCallback { return d.resolver }

// WithResolver sets the per-definition callback and returns the
// definition for chaining.
func (d *Definition) WithResolver(cb ResolutionCallback) *Definition {
	d.resolver = cb
	return d
}

// ── DefinitionBuilder ─────────────────────────────────────────────────────────

// DefinitionBuilder is the fluent definition factory. Errors from any
// step stick to the builder and surface from Register / Definition,
// so chains read straight through:
//
//	err := c.Define("report").
//	    Build("report", container.Args{"db": container.Ref("db")}).
//	    Resolved(auditResolved).
//	    In(container.StorageFactory).
//	    Register()
type DefinitionBuilder struct {
	c       *Container
	alias   string
	def     *Definition
	storage string
	err     error
}

// Define starts a definition for the alias, targeting the singleton
// backend unless In or Wildcard says otherwise.
func (c *Container) Define(alias string) *DefinitionBuilder {
	return &DefinitionBuilder{c: c, alias: alias, storage: StorageSingleton}
}

func (b *DefinitionBuilder) set(p Parameter, extractorKey string, err error) *DefinitionBuilder {
	if b.err != nil {
		return b
	}
	if err != nil {
		b.err = err
		return b
	}
	b.def, b.err = NewDefinition(b.alias, p, extractorKey)
	return b
}

// Build targets a registered type name with named constructor
// arguments. Argument values of type Ref resolve through the engine.
func (b *DefinitionBuilder) Build(typeName string, args map[string]any) *DefinitionBuilder {
	p, err := NewTypeParameter(typeName, args, false)
	return b.set(p, ExtractorType, err)
}

// Cached sets the type parameter's advisory cache flag.
func (b *DefinitionBuilder) Cached() *DefinitionBuilder {
	if b.err != nil {
		return b
	}
	if b.def == nil {
		b.err = InvalidParameterError{Reason: "Cached called before a definition step"}
		return b
	}
	tp, ok := b.def.Parameter().(*TypeParameter)
	if !ok {
		b.err = InvalidParameterError{Reason: "Cached applies to Build definitions only"}
		return b
	}
	tp.cache = true
	return b
}

// Call targets a named function or a Callable with named arguments.
func (b *DefinitionBuilder) Call(target any, args map[string]any) *DefinitionBuilder {
	p, err := NewCallableParameter(target, args)
	return b.set(p, ExtractorCallable, err)
}

// Value binds a literal value.
func (b *DefinitionBuilder) Value(v any) *DefinitionBuilder {
	return b.set(NewValueParameter(v), ExtractorValue, nil)
}

// Refer binds the alias to another alias, resolved recursively.
func (b *DefinitionBuilder) Refer(target string) *DefinitionBuilder {
	p, err := NewContainerParameter(target)
	return b.set(p, ExtractorContainer, err)
}

// Wildcard binds a glob pattern to a handler and retargets the builder
// at the wildcard backend. The builder's alias is ignored in favour of
// the pattern, which is the backend's key.
func (b *DefinitionBuilder) Wildcard(pattern string, handler WildcardHandler) *DefinitionBuilder {
	p, err := NewWildcardParameter(pattern, handler)
	if err == nil {
		b.alias = pattern
		b.storage = StorageWildcard
	}
	return b.set(p, ExtractorWildcard, err)
}

// Resolved attaches a per-definition resolution callback.
func (b *DefinitionBuilder) Resolved(cb ResolutionCallback) *DefinitionBuilder {
	if b.err != nil {
		return b
	}
	if b.def == nil {
		b.err = InvalidParameterError{Reason: "Resolved called before a definition step"}
		return b
	}
	b.def.WithResolver(cb)
	return b
}

// In retargets the definition at the named storage backend. Wildcard
// definitions are pinned to the wildcard backend: an exact-key backend
// would only ever match their pattern verbatim.
func (b *DefinitionBuilder) In(storage string) *DefinitionBuilder {
	if b.err != nil {
		return b
	}
	if b.def != nil {
		if _, isWildcard := b.def.Parameter().(*WildcardParameter); isWildcard {
			b.err = InvalidParameterError{Reason: "wildcard definitions live in the wildcards backend only"}
			return b
		}
	}
	b.storage = storage
	return b
}

// Definition returns the built definition without storing it.
func (b *DefinitionBuilder) Definition() (*Definition, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.def == nil {
		return nil, InvalidParameterError{Reason: "definition has no extraction step"}
	}
	return b.def, nil
}

// Register stores the definition in its target backend.
func (b *DefinitionBuilder) Register() error {
	def, err := b.Definition()
	if err != nil {
		return err
	}
	s, ok := b.c.StorageBackend(b.storage)
	if !ok {
		return StorageNotFoundError{Storage: b.storage}
	}
	return s.Store(def.Alias(), def)
}

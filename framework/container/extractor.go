package container

// Extractor registry keys; each matches the ParameterKind it extracts.
const (
	ExtractorCallable  = "callable"
	ExtractorType      = "type"
	ExtractorContainer = "container"
	ExtractorValue     = "value"
	ExtractorWildcard  = "wildcard"
)

// Extractor is the strategy that turns one extraction-parameter kind
// into a concrete value. The engine verifies
// IsValidExtractionParameter before calling Extract; a mismatch is a
// ContainerError naming both sides.
//
// Extractors that need sub-dependencies MUST recurse through
// Container.ExtractDependency — calling Get or Make from inside an
// extractor resets the dependency chain and defeats cycle detection.
type Extractor interface {
	// Key returns the stable registry name.
	Key() string

	// IsValidExtractionParameter reports whether this extractor can
	// extract the parameter's variant.
	IsValidExtractionParameter(p Parameter) bool

	// Extract produces the value. alias is the alias being resolved
	// (for wildcards, the matched alias, not the pattern); args are
	// call-time argument overrides, which win over registered
	// arguments on key collision.
	Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error)
}

// ── CallableExtractor ─────────────────────────────────────────────────────────

// CallableExtractor invokes a named or anonymous function with the
// merged named arguments.
type CallableExtractor struct{}

func (CallableExtractor) Key() string { return ExtractorCallable }

func (CallableExtractor) IsValidExtractionParameter(p Parameter) bool {
	_, ok := p.(*CallableParameter)
	return ok
}

func (CallableExtractor) Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error) {
	p := def.Parameter().(*CallableParameter)
	fn := p.Target()
	if fn == nil {
		named, ok := c.RegisteredFunc(p.TargetName())
		if !ok {
			return nil, UnknownCallableError{Name: p.TargetName()}
		}
		fn = named
	}
	resolved, err := resolveRefArgs(c, def, mergeArgs(p.Arguments(), args))
	if err != nil {
		return nil, err
	}
	return fn(c, resolved)
}

// ── TypeExtractor ─────────────────────────────────────────────────────────────

// TypeExtractor resolves constructor arguments, then constructs the
// named type through the engine's type registry. Arguments of type Ref
// are aliases and resolve through ExtractDependency, so they join the
// active chain.
type TypeExtractor struct{}

func (TypeExtractor) Key() string { return ExtractorType }

func (TypeExtractor) IsValidExtractionParameter(p Parameter) bool {
	_, ok := p.(*TypeParameter)
	return ok
}

func (TypeExtractor) Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error) {
	p := def.Parameter().(*TypeParameter)
	ctor, ok := c.RegisteredType(p.TypeName())
	if !ok {
		return nil, UnknownTypeError{TypeName: p.TypeName()}
	}

	resolved, err := resolveRefArgs(c, def, mergeArgs(p.Arguments(), args))
	if err != nil {
		return nil, err
	}
	return ctor(c, resolved)
}

// resolveRefArgs replaces Ref-valued arguments with the resolved
// dependencies, recursing through ExtractDependency so every alias
// joins the active chain.
func resolveRefArgs(c *Container, def *Definition, args map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(args))
	for name, v := range args {
		if ref, isRef := v.(Ref); isRef {
			dep, err := c.ExtractDependency(def, string(ref))
			if err != nil {
				return nil, err
			}
			resolved[name] = dep
			continue
		}
		resolved[name] = v
	}
	return resolved, nil
}

// ── ContainerExtractor ────────────────────────────────────────────────────────

// ContainerExtractor delegates to the engine for the referenced alias.
type ContainerExtractor struct{}

func (ContainerExtractor) Key() string { return ExtractorContainer }

func (ContainerExtractor) IsValidExtractionParameter(p Parameter) bool {
	_, ok := p.(*ContainerParameter)
	return ok
}

func (ContainerExtractor) Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error) {
	p := def.Parameter().(*ContainerParameter)
	return c.ExtractDependency(def, p.Alias())
}

// ── ValueExtractor ────────────────────────────────────────────────────────────

// ValueExtractor returns the stored value unchanged. No side effects.
type ValueExtractor struct{}

func (ValueExtractor) Key() string { return ExtractorValue }

func (ValueExtractor) IsValidExtractionParameter(p Parameter) bool {
	_, ok := p.(*ValueParameter)
	return ok
}

func (ValueExtractor) Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error) {
	return def.Parameter().(*ValueParameter).Value(), nil
}

// ── WildcardExtractor ─────────────────────────────────────────────────────────

// WildcardExtractor matches the requested alias against the stored
// pattern and hands the matched alias to the handler.
type WildcardExtractor struct{}

func (WildcardExtractor) Key() string { return ExtractorWildcard }

func (WildcardExtractor) IsValidExtractionParameter(p Parameter) bool {
	_, ok := p.(*WildcardParameter)
	return ok
}

func (WildcardExtractor) Extract(c *Container, def *Definition, alias string, args map[string]any) (any, error) {
	p := def.Parameter().(*WildcardParameter)
	if !p.Match(alias) {
		return nil, NotFoundError{Alias: alias}
	}
	return p.Handler()(c, alias)
}

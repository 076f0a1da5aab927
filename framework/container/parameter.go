package container

import (
	"strconv"
	"sync/atomic"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// ── Parameter kinds ───────────────────────────────────────────────────────────

// ParameterKind discriminates the closed set of extraction parameter
// variants. Extractor selection is a match on this kind, not on a
// runtime type name.
type ParameterKind int

const (
	KindCallable ParameterKind = iota
	KindType
	KindContainer
	KindValue
	KindWildcard
)

// String returns the kind's logical name, which doubles as the
// extractor registry key for the matching extractor.
func (k ParameterKind) String() string {
	switch k {
	case KindCallable:
		return "callable"
	case KindType:
		return "type"
	case KindContainer:
		return "container"
	case KindValue:
		return "value"
	case KindWildcard:
		return "wildcard"
	}
	return "unknown"
}

// Parameter describes what to build: one variant per extractor kind.
// Every variant exposes a stable extraction key used in chain entries
// and diagnostics.
type Parameter interface {
	Kind() ParameterKind
	ExtractionKey() string
}

// Callable is the function shape the engine invokes for callable
// parameters: the engine itself plus the merged named arguments.
type Callable func(c *Container, args map[string]any) (any, error)

// WildcardHandler produces a value for an alias matched by a wildcard
// pattern. It receives the matched alias, not the pattern.
type WildcardHandler func(c *Container, alias string) (any, error)

// TypeConstructor builds a value for a registered type name from named
// constructor arguments.
type TypeConstructor func(c *Container, args map[string]any) (any, error)

// Ref marks a named argument as an alias reference. The callable and
// type extractors resolve Ref values through the engine before
// invoking the target, so referenced aliases participate in cycle
// detection.
//
//	c.Define("report").Build("report", container.Args{"db": container.Ref("db")}).Register()
type Ref string

// Args is shorthand for a named argument map.
type Args = map[string]any

// ── CallableParameter ─────────────────────────────────────────────────────────

// CallableParameter describes "call this target with these named
// arguments". The target is either the name of a function registered
// via RegisterFunc, or a Callable value directly.
type CallableParameter struct {
	name string // registered function name; empty for direct targets
	fn   Callable
	args map[string]any
	key  string
}

// NewCallableParameter validates the target shape eagerly: anything
// that is not a string name or a Callable-shaped function fails with
// an invalid-parameter error before extraction ever runs.
//
// Anonymous function targets get a synthetic extraction key of the
// form "closure_<uuid>", assigned once here, so two distinct function
// values never share a key.
func NewCallableParameter(target any, args map[string]any) (*CallableParameter, error) {
	p := &CallableParameter{args: cloneArgs(args)}
	switch t := target.(type) {
	case string:
		if t == "" {
			return nil, InvalidParameterError{Reason: "callable target name is empty"}
		}
		p.name = t
		p.key = t
	case Callable:
		if t == nil {
			return nil, InvalidParameterError{Reason: "callable target is nil"}
		}
		p.fn = t
		p.key = "closure_" + uuid.NewString()
	case func(c *Container, args map[string]any) (any, error):
		if t == nil {
			return nil, InvalidParameterError{Reason: "callable target is nil"}
		}
		p.fn = t
		p.key = "closure_" + uuid.NewString()
	default:
		return nil, InvalidParameterError{Reason: "callable target must be a function name or a Callable"}
	}
	return p, nil
}

func (p *CallableParameter) Kind() ParameterKind   { return KindCallable }
func (p *CallableParameter) ExtractionKey() string { return p.key }

// TargetName returns the registered function name, or "" for direct
// function targets.
func (p *CallableParameter) TargetName() string { return p.name }

// Target returns the direct function target, or nil for named targets.
func (p *CallableParameter) Target() Callable { return p.fn }

// Arguments returns the registered named arguments.
func (p *CallableParameter) Arguments() map[string]any { return p.args }

// SetArgument overrides a single named argument in place.
func (p *CallableParameter) SetArgument(name string, value any) {
	if p.args == nil {
		p.args = make(map[string]any)
	}
	p.args[name] = value
}

// SetArguments replaces the whole argument map.
func (p *CallableParameter) SetArguments(args map[string]any) {
	p.args = cloneArgs(args)
}

// ── TypeParameter ─────────────────────────────────────────────────────────────

// TypeParameter describes "construct this registered type with these
// constructor arguments". CacheResult is advisory to the extractor; it
// does not change any backend's storage policy.
type TypeParameter struct {
	typeName string
	args     map[string]any
	cache    bool
}

// NewTypeParameter fails eagerly on an empty type name.
func NewTypeParameter(typeName string, args map[string]any, cacheResult bool) (*TypeParameter, error) {
	if typeName == "" {
		return nil, InvalidParameterError{Reason: "type name is empty"}
	}
	return &TypeParameter{typeName: typeName, args: cloneArgs(args), cache: cacheResult}, nil
}

func (p *TypeParameter) Kind() ParameterKind   { return KindType }
func (p *TypeParameter) ExtractionKey() string { return p.typeName }

// TypeName returns the registered type name to construct.
func (p *TypeParameter) TypeName() string { return p.typeName }

// Arguments returns the registered constructor arguments.
func (p *TypeParameter) Arguments() map[string]any { return p.args }

// CacheResult reports the advisory cache flag.
func (p *TypeParameter) CacheResult() bool { return p.cache }

// SetArgument overrides a single constructor argument in place.
func (p *TypeParameter) SetArgument(name string, value any) {
	if p.args == nil {
		p.args = make(map[string]any)
	}
	p.args[name] = value
}

// SetArguments replaces the whole constructor argument map.
func (p *TypeParameter) SetArguments(args map[string]any) {
	p.args = cloneArgs(args)
}

// ── ContainerParameter ────────────────────────────────────────────────────────

// ContainerParameter describes "look this alias up in the container".
type ContainerParameter struct {
	alias string
}

// NewContainerParameter fails eagerly on an empty alias.
func NewContainerParameter(alias string) (*ContainerParameter, error) {
	if alias == "" {
		return nil, InvalidParameterError{Reason: "container reference alias is empty"}
	}
	return &ContainerParameter{alias: alias}, nil
}

func (p *ContainerParameter) Kind() ParameterKind   { return KindContainer }
func (p *ContainerParameter) ExtractionKey() string { return p.alias }

// Alias returns the referenced alias.
func (p *ContainerParameter) Alias() string { return p.alias }

// ── ValueParameter ────────────────────────────────────────────────────────────

// valueKeySeq numbers value parameters for diagnostics.
var valueKeySeq atomic.Int64

// ValueParameter describes "use this literal value unchanged".
type ValueParameter struct {
	value any
	key   string
}

// NewValueParameter accepts any value, nil included.
func NewValueParameter(value any) *ValueParameter {
	return &ValueParameter{
		value: value,
		key:   "value_" + strconv.FormatInt(valueKeySeq.Add(1), 10),
	}
}

func (p *ValueParameter) Kind() ParameterKind   { return KindValue }
func (p *ValueParameter) ExtractionKey() string { return p.key }

// Value returns the stored value.
func (p *ValueParameter) Value() any { return p.value }

// ── WildcardParameter ─────────────────────────────────────────────────────────

// WildcardParameter describes "for any alias matching this glob
// pattern, ask the handler". Patterns use gobwas/glob syntax with '.'
// as the separator, so "repo.*" matches "repo.user" but not
// "repo.user.archive" (use "repo.**" for that).
type WildcardParameter struct {
	pattern string
	matcher glob.Glob
	handler WildcardHandler
}

// NewWildcardParameter compiles the pattern eagerly; an invalid
// pattern or nil handler fails at construction.
func NewWildcardParameter(pattern string, handler WildcardHandler) (*WildcardParameter, error) {
	if pattern == "" {
		return nil, InvalidParameterError{Reason: "wildcard pattern is empty"}
	}
	if handler == nil {
		return nil, InvalidParameterError{Reason: "wildcard handler is nil"}
	}
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, InvalidParameterError{Reason: "wildcard pattern " + strconv.Quote(pattern) + ": " + err.Error()}
	}
	return &WildcardParameter{pattern: pattern, matcher: g, handler: handler}, nil
}

func (p *WildcardParameter) Kind() ParameterKind   { return KindWildcard }
func (p *WildcardParameter) ExtractionKey() string { return p.pattern }

// Pattern returns the registered glob pattern.
func (p *WildcardParameter) Pattern() string { return p.pattern }

// Handler returns the registered handler.
func (p *WildcardParameter) Handler() WildcardHandler { return p.handler }

// Match reports whether the alias matches the compiled pattern.
func (p *WildcardParameter) Match(alias string) bool { return p.matcher.Match(alias) }

// ── helpers ──────────────────────────────────────────────────────────────────

func cloneArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

// mergeArgs overlays call-time overrides on registered arguments;
// overrides win on key collision. Inputs are not mutated.
func mergeArgs(registered, overrides map[string]any) map[string]any {
	if len(overrides) == 0 {
		return registered
	}
	out := make(map[string]any, len(registered)+len(overrides))
	for k, v := range registered {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

package container

// Default backend keys, in engine registration (and therefore probe)
// order.
const (
	StorageFactory   = "factory"
	StorageSingleton = "singleton"
	StorageValue     = "values"
	StorageWildcard  = "wildcards"
)

// Storage is the shared backend contract: a named keyed mapping from
// alias to definition or value with backend-specific retrieval
// semantics. Get fails with a NotFound kind when the alias is absent.
type Storage interface {
	// StorageKey returns the backend's unique name within the engine.
	StorageKey() string

	Has(alias string) bool
	Get(alias string) (any, error)
	Store(alias string, value any) error
	Remove(alias string)
}

// containerAware backends get the owning engine on AddStorage. The
// built-in definition-carrying backends need it to extract.
type containerAware interface {
	attach(c *Container)
}

// argStorage backends accept call-time argument overrides on reads.
// The engine uses this path when Get carries WithArguments.
type argStorage interface {
	getWithArguments(alias string, args map[string]any) (any, error)
}

// rawStorage backends accept arbitrary raw values in Store; the
// compound-key setter stores into them without wrapping values in
// definitions.
type rawStorage interface {
	acceptsRawValues() bool
}

// requireDefinition guards Store for definition-carrying backends.
func requireDefinition(storageKey string, value any) (*Definition, error) {
	def, ok := value.(*Definition)
	if !ok || def == nil {
		return nil, InvalidParameterError{Reason: storageKey + " storage stores definitions only"}
	}
	return def, nil
}

// ── Factory ──────────────────────────────────────────────────────────────────

// factoryStorage re-extracts its definition on every Get: each read is
// a fresh full resolution, nothing is cached.
type factoryStorage struct {
	c    *Container
	defs map[string]*Definition
}

func newFactoryStorage() *factoryStorage {
	return &factoryStorage{defs: make(map[string]*Definition)}
}

func (s *factoryStorage) attach(c *Container)   { s.c = c }
func (s *factoryStorage) StorageKey() string    { return StorageFactory }
func (s *factoryStorage) Has(alias string) bool { _, ok := s.defs[alias]; return ok }

func (s *factoryStorage) Get(alias string) (any, error) {
	return s.getWithArguments(alias, nil)
}

func (s *factoryStorage) getWithArguments(alias string, args map[string]any) (any, error) {
	def, ok := s.defs[alias]
	if !ok {
		return nil, NotFoundError{Alias: alias}
	}
	return s.c.extract(def, alias, args)
}

func (s *factoryStorage) Store(alias string, value any) error {
	def, err := requireDefinition(StorageFactory, value)
	if err != nil {
		return err
	}
	s.defs[alias] = def
	return nil
}

func (s *factoryStorage) Remove(alias string) { delete(s.defs, alias) }

// ── Singleton ────────────────────────────────────────────────────────────────

// singletonStorage extracts once per alias and memoizes the result.
// Caching happens only after extraction succeeds; a failed extraction
// leaves nothing behind and the next Get retries.
type singletonStorage struct {
	c         *Container
	defs      map[string]*Definition
	instances map[string]any
}

func newSingletonStorage() *singletonStorage {
	return &singletonStorage{
		defs:      make(map[string]*Definition),
		instances: make(map[string]any),
	}
}

func (s *singletonStorage) attach(c *Container) { s.c = c }
func (s *singletonStorage) StorageKey() string  { return StorageSingleton }

func (s *singletonStorage) Has(alias string) bool {
	if _, ok := s.instances[alias]; ok {
		return true
	}
	_, ok := s.defs[alias]
	return ok
}

func (s *singletonStorage) Get(alias string) (any, error) {
	return s.getWithArguments(alias, nil)
}

func (s *singletonStorage) getWithArguments(alias string, args map[string]any) (any, error) {
	if inst, ok := s.instances[alias]; ok {
		return inst, nil
	}
	def, ok := s.defs[alias]
	if !ok {
		return nil, NotFoundError{Alias: alias}
	}
	v, err := s.c.extract(def, alias, args)
	if err != nil {
		return nil, err
	}
	s.instances[alias] = v
	return v, nil
}

// Store accepts a definition; any cached instance for the alias is
// dropped so the next Get rebuilds with the new definition.
func (s *singletonStorage) Store(alias string, value any) error {
	def, err := requireDefinition(StorageSingleton, value)
	if err != nil {
		return err
	}
	delete(s.instances, alias)
	s.defs[alias] = def
	return nil
}

func (s *singletonStorage) Remove(alias string) {
	delete(s.defs, alias)
	delete(s.instances, alias)
}

// ── Value ────────────────────────────────────────────────────────────────────

// valueStorage stores and returns raw values verbatim. Store accepts
// anything, definitions included — they come back as-is.
type valueStorage struct {
	items map[string]any
}

func newValueStorage() *valueStorage {
	return &valueStorage{items: make(map[string]any)}
}

func (s *valueStorage) StorageKey() string     { return StorageValue }
func (s *valueStorage) acceptsRawValues() bool { return true }
func (s *valueStorage) Has(alias string) bool  { _, ok := s.items[alias]; return ok }

func (s *valueStorage) Get(alias string) (any, error) {
	v, ok := s.items[alias]
	if !ok {
		return nil, NotFoundError{Alias: alias}
	}
	return v, nil
}

func (s *valueStorage) Store(alias string, value any) error {
	s.items[alias] = value
	return nil
}

func (s *valueStorage) Remove(alias string) { delete(s.items, alias) }

// ── Wildcard ─────────────────────────────────────────────────────────────────

// wildcardEntry pairs a pattern with its definition. Matching walks
// entries in registration order; the first match wins.
type wildcardEntry struct {
	pattern string
	param   *WildcardParameter
	def     *Definition
}

// wildcardStorage keys definitions by glob pattern instead of exact
// alias. Has and Get match the requested alias against the patterns.
type wildcardStorage struct {
	c       *Container
	entries []wildcardEntry
}

func newWildcardStorage() *wildcardStorage { return &wildcardStorage{} }

func (s *wildcardStorage) attach(c *Container) { s.c = c }
func (s *wildcardStorage) StorageKey() string  { return StorageWildcard }

func (s *wildcardStorage) Has(alias string) bool {
	for _, e := range s.entries {
		if e.param.Match(alias) {
			return true
		}
	}
	return false
}

func (s *wildcardStorage) Get(alias string) (any, error) {
	for _, e := range s.entries {
		if e.param.Match(alias) {
			return s.c.extract(e.def, alias, nil)
		}
	}
	return nil, NotFoundError{Alias: alias}
}

// Store accepts a wildcard definition keyed by its pattern. A
// re-registered pattern replaces the existing entry in place, keeping
// its position in the match order.
func (s *wildcardStorage) Store(pattern string, value any) error {
	def, err := requireDefinition(StorageWildcard, value)
	if err != nil {
		return err
	}
	wp, ok := def.Parameter().(*WildcardParameter)
	if !ok {
		return InvalidParameterError{Reason: "wildcards storage stores wildcard definitions only"}
	}
	for i, e := range s.entries {
		if e.pattern == pattern {
			s.entries[i] = wildcardEntry{pattern: pattern, param: wp, def: def}
			return nil
		}
	}
	s.entries = append(s.entries, wildcardEntry{pattern: pattern, param: wp, def: def})
	return nil
}

// Remove deletes by exact pattern, not by matching alias.
func (s *wildcardStorage) Remove(pattern string) {
	for i, e := range s.entries {
		if e.pattern == pattern {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

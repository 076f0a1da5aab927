package container

import "strings"

// Compound-key access: the indexed get/set/has/delete surface. Keys
// take the form "storageName::alias"; when the prefix is not a
// registered backend name the whole key is treated as an alias in the
// default (singleton) backend.
//
//	_ = c.SetKey("values::x", 5)   // raw value into the values backend
//	_ = c.SetKey("x", 5)           // value definition into singleton
//	v, _ := c.GetKey("values::x")  // 5

const keySeparator = "::"

// splitKey resolves a compound key to (backend name, alias).
func (c *Container) splitKey(key string) (string, string) {
	if i := strings.Index(key, keySeparator); i >= 0 {
		if _, ok := c.storages[key[:i]]; ok {
			return key[:i], key[i+len(keySeparator):]
		}
	}
	return StorageSingleton, key
}

// SetKey stores a value under a compound key. Raw values headed for a
// definition-carrying backend are wrapped in value definitions, so
// they read back unchanged; *Definition values are stored as-is.
func (c *Container) SetKey(key string, value any) error {
	storageName, alias := c.splitKey(key)
	s := c.storages[storageName]

	if _, isDef := value.(*Definition); isDef {
		return s.Store(alias, value)
	}
	if raw, ok := s.(rawStorage); ok && raw.acceptsRawValues() {
		return s.Store(alias, value)
	}
	def, err := NewDefinition(alias, NewValueParameter(value), ExtractorValue)
	if err != nil {
		return err
	}
	return s.Store(alias, def)
}

// GetKey resolves a compound key through the engine, so callbacks and
// cycle detection apply exactly as they do for Get.
func (c *Container) GetKey(key string) (any, error) {
	storageName, alias := c.splitKey(key)
	return c.Get(alias, FromStorage(storageName))
}

// HasKey reports whether the compound key's backend knows the alias.
func (c *Container) HasKey(key string) bool {
	storageName, alias := c.splitKey(key)
	return c.Has(alias, storageName)
}

// DeleteKey removes the alias from the compound key's backend.
func (c *Container) DeleteKey(key string) {
	storageName, alias := c.splitKey(key)
	c.storages[storageName].Remove(alias)
}

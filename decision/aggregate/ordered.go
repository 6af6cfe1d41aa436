package aggregate

// orderedMap keeps values keyed by string in first-insertion order
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{
		keys:   make([]string, 0),
		values: make(map[string]V),
	}
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// getOrCreate returns the value for key, inserting create() on first sight
func (m *orderedMap[V]) getOrCreate(key string, create func() V) V {
	if v, ok := m.values[key]; ok {
		return v
	}
	v := create()
	m.keys = append(m.keys, key)
	m.values[key] = v
	return v
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

func (m *orderedMap[V]) orderedKeys() []string {
	return append([]string(nil), m.keys...)
}

func (m *orderedMap[V]) orderedValues() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

package traceability

// orderedMap mapa que recuerda el orden de inserción de sus claves.
// La creación explícita del valor (getOrCreate) reemplaza la construcción implícita por defecto.
type orderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{values: make(map[K]V)}
}

func (m *orderedMap[K, V]) get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

func (m *orderedMap[K, V]) set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *orderedMap[K, V]) getOrCreate(k K, create func() V) V {
	if v, ok := m.values[k]; ok {
		return v
	}
	v := create()
	m.keys = append(m.keys, k)
	m.values[k] = v
	return v
}

func (m *orderedMap[K, V]) len() int { return len(m.keys) }

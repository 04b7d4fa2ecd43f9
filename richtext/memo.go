package richtext

// memo caches the last value computed for a key.
type memo[K comparable, V any] struct {
	key K
	val V
	ok  bool
}

func (m *memo[K, V]) get(key K, compute func() V) V {
	if m.ok && m.key == key {
		return m.val
	}
	m.key, m.val, m.ok = key, compute(), true
	return m.val
}

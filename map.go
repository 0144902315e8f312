package automaton

// Hashable is a key with a custom hash and equality, for keys Go maps cannot
// hold directly (compositions are backed by slices).
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap is a chained hash table over Hashable keys. Subset construction
// keys discovered DFA states by their composition through it.
type HashMap[T any] struct {
	buckets    []*entry[T]
	size       int
	mask       uint64
	emptyValue T
	loadFactor float64
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

type hashMapOptions struct {
	capacity   int
	loadFactor float64
}

type HashMapOption func(*hashMapOptions)

// WithCapacity sets the initial capacity, rounded up to a power of two.
func WithCapacity(capacity int) HashMapOption {
	return func(o *hashMapOptions) {
		o.capacity = capacity
	}
}

// WithLoadFactor sets the resize threshold (default 0.75).
func WithLoadFactor(loadFactor float64) HashMapOption {
	return func(o *hashMapOptions) {
		o.loadFactor = loadFactor
	}
}

func NewHashMap[T any](options ...HashMapOption) *HashMap[T] {
	opts := &hashMapOptions{capacity: 1, loadFactor: 0.75}
	for _, opt := range options {
		opt(opts)
	}

	capacity := 1
	for capacity < opts.capacity {
		capacity <<= 1
	}

	return &HashMap[T]{
		buckets:    make([]*entry[T], capacity),
		mask:       uint64(capacity - 1),
		loadFactor: opts.loadFactor,
	}
}

// Set inserts or updates the value for key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[T]{
		key:   key,
		value: value,
		next:  m.buckets[index],
	}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

// Get returns the value for key and whether it is present.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	return m.emptyValue, false
}

func (m *HashMap[T]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*entry[T], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			index := e.key.Hash() & newMask
			newBuckets[index] = &entry[T]{
				key:   e.key,
				value: e.value,
				next:  newBuckets[index],
			}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}

// Size returns the number of entries.
func (m *HashMap[T]) Size() int {
	return m.size
}

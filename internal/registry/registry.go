package registry

import "github.com/alphadose/haxmap"

// Key is the set of key types a Registry accepts.
type Key interface {
	~string | ~uintptr
}

// Registry is a table that is safe for concurrent reads and writes.
type Registry[K Key, T any] interface {
	Get(key K) (T, bool)
	GetOrAdd(key K, create func() T) T
	Add(key K, value T)
	Del(key K)
}

type registry[K Key, T any] struct {
	values *haxmap.Map[K, T]
}

func New[K Key, T any]() Registry[K, T] {
	return &registry[K, T]{
		values: haxmap.New[K, T](),
	}
}

func (r *registry[K, T]) Get(key K) (T, bool) {
	return r.values.Get(key)
}

// GetOrAdd returns the value for key, storing the result of create when there is none.
func (r *registry[K, T]) GetOrAdd(key K, create func() T) T {
	v, _ := r.values.GetOrCompute(key, create)
	return v
}

func (r *registry[K, T]) Add(key K, value T) {
	r.values.Set(key, value)
}

func (r *registry[K, T]) Del(key K) {
	r.values.Del(key)
}

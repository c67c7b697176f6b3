package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		r := New[string, int]()
		r.Add("one", 1)
		v, ok := r.Get("one")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		r := New[string, string]()
		r.Add("k", "a")
		r.Add("k", "b")
		v, _ := r.Get("k")
		assert.Equal(t, "b", v)
	})

	t.Run("uintptr keys", func(t *testing.T) {
		r := New[uintptr, string]()
		r.Add(1, "a")
		r.Add(2, "b")
		v, ok := r.Get(2)
		require.True(t, ok)
		assert.Equal(t, "b", v)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		r := New[string, int]()
		assert.NotPanics(t, func() { r.Del("missing") })
		_, ok := r.Get("missing")
		assert.False(t, ok)
	})

	t.Run("get or add keeps the first value", func(t *testing.T) {
		r := New[string, int]()
		assert.Equal(t, 1, r.GetOrAdd("k", func() int { return 1 }))
		assert.Equal(t, 1, r.GetOrAdd("k", func() int { return 2 }))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		r := New[string, int]()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.Add(fmt.Sprintf("k%d", i), i)
			}()
		}
		wg.Wait()
		for i := range 50 {
			v, ok := r.Get(fmt.Sprintf("k%d", i))
			require.True(t, ok)
			assert.Equal(t, i, v)
		}
	})
}

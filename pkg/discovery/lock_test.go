package discovery

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocksArePrunedAfterUse(t *testing.T) {
	s := &service{locks: make(map[string]*userLock)}

	var wg sync.WaitGroup
	counts := map[string]*int{"anna": new(int), "maria": new(int)}
	for i := 0; i < 50; i++ {
		for _, id := range []string{"anna", "maria"} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				unlock := s.lock(id)
				*counts[id]++
				unlock()
			}(id)
		}
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.locks)
	assert.Equal(t, 50, *counts["anna"])
	assert.Equal(t, 50, *counts["maria"])
}

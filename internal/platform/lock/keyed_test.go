package lock_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"readenvy/internal/platform/lock"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	t.Parallel()
	k := lock.NewKeyed()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("book-1")
			v := counter
			v++
			counter = v
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, k.Len())
}

func TestKeyedDifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()
	k := lock.NewKeyed()
	unlockA := k.Lock("a")
	defer unlockA()
	done := make(chan struct{})
	go func() {
		unlock := k.Lock("b")
		unlock()
		close(done)
	}()
	<-done
	assert.Equal(t, 1, k.Len())
}

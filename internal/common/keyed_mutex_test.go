package common

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("blog_post:1")
			counter++
			km.Unlock("blog_post:1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	// Holding one key must not block another
	km.Lock("blog_post:1")
	done := make(chan struct{})
	go func() {
		km.Lock("social_post:2")
		km.Unlock("social_post:2")
		close(done)
	}()
	<-done
	km.Unlock("blog_post:1")
}

func TestKeyedMutexUnlockUnknownKeyPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("never-locked") })
}

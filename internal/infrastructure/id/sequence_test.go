package id

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceStartsAtOne(t *testing.T) {
	seq := NewSequence()
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(3), seq.Next())
}

func TestSequenceInstancesAreIndependent(t *testing.T) {
	a := NewSequence()
	b := NewSequence()

	a.Next()
	a.Next()
	assert.Equal(t, int64(1), b.Next())
}

func TestSequenceConcurrentNext(t *testing.T) {
	seq := NewSequence()

	const n = 100
	var wg sync.WaitGroup
	seen := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- seq.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]struct{}, n)
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
}

package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_DrainRunsInOrder(t *testing.T) {
	q := NewQueue()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Post(func() { got = append(got, i) })
	}
	q.Post(nil)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, q.Drain())
}

func TestQueue_PostDuringDrainWaits(t *testing.T) {
	q := NewQueue()
	ran := 0
	q.Post(func() {
		q.Post(func() { ran++ })
	})

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, 0, ran)
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, 1, ran)
}

func TestQueue_ConcurrentPost(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Post(func() {})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Drain())
}

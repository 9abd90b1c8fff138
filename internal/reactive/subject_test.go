package reactive

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectReplaysLatestOnSubscribe(t *testing.T) {
	s := NewSubject(1)
	s.Next(2)

	var got []int
	unsubscribe := s.Subscribe(func(v int) { got = append(got, v) })
	defer unsubscribe()

	assert.Equal(t, []int{2}, got)

	s.Next(3)
	assert.Equal(t, []int{2, 3}, got)
	assert.Equal(t, 3, s.Value())
}

func TestSubjectBroadcastsToAllSubscribersInOrder(t *testing.T) {
	s := NewSubject("")
	var order []string

	s.Subscribe(func(v string) { order = append(order, "a:"+v) })
	s.Subscribe(func(v string) { order = append(order, "b:"+v) })
	order = nil

	s.Next("x")
	assert.Equal(t, []string{"a:x", "b:x"}, order)
}

func TestSubjectUnsubscribe(t *testing.T) {
	s := NewSubject(0)
	calls := 0
	unsubscribe := s.Subscribe(func(int) { calls++ })
	assert.Equal(t, 1, s.Subscribers())

	unsubscribe()
	unsubscribe()
	s.Next(1)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Subscribers())
}

func TestSubjectUnsubscribeFromCallback(t *testing.T) {
	s := NewSubject(0)
	var unsubscribe func()
	calls := 0
	unsubscribe = s.Subscribe(func(v int) {
		calls++
		if v == 1 {
			unsubscribe()
		}
	})

	s.Next(1)
	s.Next(2)
	assert.Equal(t, 2, calls)
}

func TestSubjectConcurrentNext(t *testing.T) {
	s := NewSubject(0)
	var mu sync.Mutex
	seen := 0
	s.Subscribe(func(int) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Next(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 101, seen)
}

func TestMapRecomputesFromSource(t *testing.T) {
	s := NewSubject([]int{1, 2})
	sum := Map[[]int, int](s, func(xs []int) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	})

	assert.Equal(t, 3, sum.Value())

	var got []int
	unsubscribe := sum.Subscribe(func(v int) { got = append(got, v) })
	s.Next([]int{5, 5, 5})
	unsubscribe()
	s.Next([]int{100})

	assert.Equal(t, []int{3, 15}, got)
	assert.Equal(t, 100, sum.Value())
}

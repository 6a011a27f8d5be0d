package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New(10)
	assert.Equal(t, 10, s.Get())

	s.Set(20)
	assert.Equal(t, 20, s.Get())
}

func TestStore_NotifiesInSubscriptionOrder(t *testing.T) {
	s := New("")

	var order []int
	s.Subscribe(func(string) { order = append(order, 1) })
	s.Subscribe(func(string) { order = append(order, 2) })
	s.Subscribe(func(string) { order = append(order, 3) })

	s.Set("x")

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestStore_Update(t *testing.T) {
	s := New(5)

	var seen int
	s.Subscribe(func(v int) { seen = v })

	s.Update(func(v int) int { return v * 2 })

	assert.Equal(t, 10, s.Get())
	assert.Equal(t, 10, seen)
}

func TestStore_Cancel(t *testing.T) {
	s := New(0)

	calls := 0
	cancel := s.Subscribe(func(int) { calls++ })

	s.Set(1)
	cancel()
	cancel() // Second cancel is a no-op.
	s.Set(2)

	assert.Equal(t, 1, calls)
}

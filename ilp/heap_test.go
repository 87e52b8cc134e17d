package ilp

import (
	"math/rand"
	"testing"
)

func TestSearchHeapOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := make(searchHeap, 0)
	for i := 0; i < 200; i++ {
		h.Push(&searchNode{bound: rng.Float64()*100 - 50})
	}
	last := h.Pop().bound
	for h.Len() > 0 {
		next := h.Pop().bound
		if next < last {
			t.Errorf("heap returned %f after %f", next, last)
			return
		}
		last = next
	}
}

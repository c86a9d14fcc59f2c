// Package segallocutil provides small, deterministic helpers for driving a
// segalloc.Context through the kind of alloc/free churn spec.md §8's test
// scenarios describe. It is not a general-purpose workload generator or
// fuzzing harness — just the few repeated shapes segalloc's own test suite
// needs, factored out once they showed up in more than one test file.
package segallocutil

import "github.com/segalloc/segalloc"

// Slots holds a fixed number of independently tracked allocations against
// one Context, for tests that repeatedly toggle a random slot between
// "holding a live allocation" and "empty" (spec.md §8 scenario 1).
type Slots struct {
	ctx   *segalloc.Context
	items [][]byte
}

// NewSlots returns a Slots of n empty entries bound to ctx.
func NewSlots(ctx *segalloc.Context, n int) *Slots {
	return &Slots{ctx: ctx, items: make([][]byte, n)}
}

// Toggle frees slot i if it currently holds an allocation, otherwise fills
// it with a size-byte allocation. It reports whether the slot ended up
// holding memory.
func (s *Slots) Toggle(i, size int) bool {
	if s.items[i] != nil {
		s.ctx.Free(s.items[i])
		s.items[i] = nil
		return false
	}
	s.items[i] = s.ctx.Allocate(size)
	return s.items[i] != nil
}

// DrainAll frees every currently occupied slot.
func (s *Slots) DrainAll() {
	for i, p := range s.items {
		if p != nil {
			s.ctx.Free(p)
			s.items[i] = nil
		}
	}
}

// Live returns the number of slots currently holding an allocation.
func (s *Slots) Live() int {
	n := 0
	for _, p := range s.items {
		if p != nil {
			n++
		}
	}
	return n
}

// FillUntilExhausted repeatedly allocates size bytes from ctx until
// Allocate returns nil, and returns every allocation that succeeded. Used
// by tests that need a Context with no more room left for a requested
// split or locality check (spec.md §8 scenario 3).
func FillUntilExhausted(ctx *segalloc.Context, size int) [][]byte {
	var got [][]byte
	for {
		p := ctx.Allocate(size)
		if p == nil {
			return got
		}
		got = append(got, p)
	}
}

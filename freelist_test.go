package segalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLeavesOneBinNonEmpty(t *testing.T) {
	c := newTestContext(t, 4096)

	// Exactly one bin should be non-empty: the one holding the single
	// large interior free chunk AddBuffer created in New.
	nonEmpty := 0
	for bin := 0; bin < numBins; bin++ {
		if !c.binIsEmpty(bin) {
			nonEmpty++
		}
	}
	assert.Equal(t, 1, nonEmpty)
}

func TestInsertAndUnlinkRoundTrip(t *testing.T) {
	c := newTestContext(t, 1<<16)

	a := c.Allocate(64)
	b := c.Allocate(64)
	if a == nil || b == nil {
		t.Fatal("setup allocation failed")
	}
	c.Free(a)
	c.Free(b)
	assert.NoError(t, c.Check())
}

package segalloc_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segalloc/segalloc"
	"github.com/segalloc/segalloc/segallocutil"
)

// TestFillDrain5000Rounds is spec.md §8 scenario 1: 50 slots, 5000 random
// toggle rounds, then a full drain. Check must pass throughout and
// free_memory must return to its initial value.
func TestFillDrain5000Rounds(t *testing.T) {
	c, err := segalloc.New(make([]byte, 10<<20))
	require.NoError(t, err)
	before := c.FreeMemory()

	slots := segallocutil.NewSlots(c, 50)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		j := rng.Intn(50)
		slots.Toggle(j, rng.Intn(1000))
		require.NoError(t, c.Check())
	}

	slots.DrainAll()
	assert.NoError(t, c.Check())
	assert.Equal(t, before, c.FreeMemory())
}

// TestUniversalInvariants runs a longer randomized mix of every operation
// and checks after each step that Check passes, that reallocated payloads
// keep their original prefix and that callocated payloads are zeroed; once
// everything is freed, free memory must be back to the whole interior.
func TestUniversalInvariants(t *testing.T) {
	c, err := segalloc.New(make([]byte, 4<<20))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	var live [][]byte
	for round := 0; round < 2000; round++ {
		switch rng.Intn(4) {
		case 0:
			n := rng.Intn(2000)
			p := c.Allocate(n)
			if p != nil {
				require.Len(t, p, n)
				for i := range p {
					p[i] = byte(i)
				}
				live = append(live, p)
			}
		case 1:
			if len(live) > 0 {
				i := rng.Intn(len(live))
				c.Free(live[i])
				live[i] = live[len(live)-1]
				live = live[:len(live)-1]
			}
		case 2:
			if len(live) > 0 {
				i := rng.Intn(len(live))
				oldLen := len(live[i])
				newLen := rng.Intn(2000)
				grown := c.Reallocate(live[i], newLen)
				if grown != nil {
					n := oldLen
					if newLen < n {
						n = newLen
					}
					for k := 0; k < n; k++ {
						assert.Equal(t, byte(k), grown[k])
					}
					for k := range grown {
						grown[k] = byte(k)
					}
					live[i] = grown
				}
			}
		case 3:
			count := rng.Intn(20)
			size := rng.Intn(32)
			p := c.Callocate(count, size)
			if p != nil {
				for _, b := range p {
					assert.Zero(t, b)
				}
				for i := range p {
					p[i] = byte(i)
				}
				live = append(live, p)
			}
		}
		require.NoError(t, c.Check())
	}

	for _, p := range live {
		c.Free(p)
	}
	assert.NoError(t, c.Check())
	assert.Equal(t, int64(4<<20)-2*segalloc.MinInuseChunkSize, c.FreeMemory())
}

package segalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// A buffer too small to carry two sentinels plus one minimum free
	// chunk is silently ignored (spec.md §4.7), not an error: the
	// precondition New must satisfy is about the Context record itself,
	// which in this port is never embedded in the caller's buffer.
	tests := []struct {
		name       string
		size       int
		wantUsable bool
	}{
		{"comfortable", 1 << 20, true},
		{"exact_minimum", 2*MinInuseChunkSize + MinFreeChunkSize, true},
		{"too_small", 2*MinInuseChunkSize + MinFreeChunkSize - 1, false},
		{"empty", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(make([]byte, tt.size))
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NoError(t, c.Check())
			if tt.wantUsable {
				assert.Greater(t, c.FreeMemory(), int64(0))
			} else {
				assert.Equal(t, int64(0), c.FreeMemory())
				assert.Nil(t, c.Allocate(1))
			}
		})
	}
}

func TestNewFreeMemoryAccountsForSentinels(t *testing.T) {
	buf := make([]byte, 4096)
	c, err := New(buf)
	require.NoError(t, err)

	want := int64(len(buf)) - 2*MinInuseChunkSize
	assert.Equal(t, want, c.FreeMemory())
}

func TestSetExternalAlloc(t *testing.T) {
	c, err := New(make([]byte, 4096))
	require.NoError(t, err)

	calls := 0
	c.SetExternalAlloc(GrowerFunc(func(minSize int) ([]byte, int) {
		calls++
		return nil, 0
	}))

	// Exhaust the buffer, then force a growth attempt.
	for c.Allocate(64) != nil {
	}
	assert.Equal(t, 1, calls)
}

func TestGetSetContext(t *testing.T) {
	a, err := New(make([]byte, 4096))
	require.NoError(t, err)
	b, err := New(make([]byte, 4096))
	require.NoError(t, err)

	SetContext(a)
	assert.Same(t, a, GetContext())
	p := Allocate(16)
	require.NotNil(t, p)

	SetContext(b)
	assert.Same(t, b, GetContext())
	assert.NoError(t, Check())

	SetContext(a)
	Free(p)
	assert.NoError(t, Check())
}

// Package growth provides segalloc.Grower implementations: the external
// allocator callback consulted when every buffer a Context already owns is
// exhausted (spec.md §4.7). Grounded on the teacher's own buffer-recycling
// idiom (cloudwego-gopkg/bufiox and gridbuf/xbuf all reach for
// bytedance/gopkg's mcache and dirtmake rather than raw make([]byte, n) for
// their own buffer growth).
package growth

import (
	"sync"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/segalloc/segalloc"
)

// NewBuffer allocates a buffer suitable for segalloc.New or Context.AddBuffer
// using bytedance/gopkg/lang/dirtmake, which skips the runtime's
// zero-initialization of the backing array. segalloc stamps every byte it
// cares about (sentinels, free headers) before ever exposing a payload, so
// the memory being dirty on arrival is harmless, exactly as it is for
// protocol/thrift's own dirtmake.Bytes buffers.
func NewBuffer(size int) []byte {
	return dirtmake.Bytes(size, size)
}

// PoolGrower is a Grower backed by bytedance/gopkg/lang/mcache's size-binned
// sync.Pool family, the same pool gridbuf and xbuf's ReadBuffer/WriteBuffer
// draw their chunks from. Growth regions it hands out are returned to the
// pool when ReleaseAll is called, which a Context never does on its own —
// callers that want pooled regions back must retire the owning Context and
// call ReleaseAll themselves, since segalloc has no notion of shrinking a
// buffer once installed.
type PoolGrower struct {
	mu      sync.Mutex
	regions [][]byte
}

// NewPoolGrower returns a Grower whose regions come from mcache.Malloc.
func NewPoolGrower() *PoolGrower {
	return &PoolGrower{}
}

func (g *PoolGrower) Grow(minSize int) ([]byte, int) {
	if minSize <= 0 {
		return nil, 0
	}
	region := mcache.Malloc(minSize)
	g.mu.Lock()
	g.regions = append(g.regions, region)
	g.mu.Unlock()
	return region, len(region)
}

// ReleaseAll returns every region this PoolGrower has ever handed out back
// to mcache's pool. It must not be called while any Context still using
// those regions is alive.
func (g *PoolGrower) ReleaseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.regions {
		mcache.Free(r)
	}
	g.regions = nil
}

// Fixed is a Grower that hands out a single pre-sized region exactly once,
// then declines; useful in tests that exercise spec.md §4.7's growth path
// deterministically without pulling in a pooling allocator.
type Fixed struct {
	region []byte
	used   bool
}

// NewFixed wraps buf as a one-shot Grower.
func NewFixed(buf []byte) *Fixed {
	return &Fixed{region: buf}
}

func (g *Fixed) Grow(minSize int) ([]byte, int) {
	if g.used || len(g.region) < minSize {
		return nil, 0
	}
	g.used = true
	return g.region, len(g.region)
}

var _ segalloc.Grower = (*PoolGrower)(nil)
var _ segalloc.Grower = (*Fixed)(nil)
var _ segalloc.Grower = (*LocalPoolGrower)(nil)

// Package segalloc implements a boundary-tag, segregated-free-list dynamic
// memory allocator over one or more caller-supplied []byte buffers, for
// environments that manage their own arenas instead of relying on the Go
// heap: embedded-style fixed regions, sandboxes, deterministic test
// fixtures, and systems that need several independent, checkpointable
// heaps.
//
// The core is single-threaded and non-suspending (spec.md §5): every public
// method on *Context must either be called from one goroutine at a time, or
// behind an external lock. Separate *Context values are fully independent
// and may be driven from separate goroutines concurrently.
package segalloc

import "math"

// Context is a single heap: its bin table, free-memory accounting, and
// last-split hint. Unlike the C original, Context is never embedded inside
// a managed buffer — Go's GC forbids treating caller bytes as a long-lived
// aliased struct — so it is an ordinary heap value; GetContext/SetContext
// (facade.go) swap it wholesale to emulate the C API's process-wide
// context pointer for callers that want that shape (see DESIGN.md).
type Context struct {
	buffers []*managedBuffer // buffers[0] is the private sentinel store

	freeMemory int64

	lastChunk     chunkRef
	lastChunkSize int32

	grower Grower
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithExternalAlloc registers the Grower consulted when every managed
// buffer is exhausted (spec.md §4.7). Equivalent to calling
// SetExternalAlloc after New.
func WithExternalAlloc(g Grower) Option {
	return func(c *Context) { c.grower = g }
}

// New initializes a fresh Context and feeds buf to it as the first managed
// buffer (spec.md §4.7 `initialize`). A buf too small to carry two sentinel
// blocks plus one minimum free chunk is silently ignored, exactly as
// AddBuffer ignores it, leaving a Context with no free memory; New returns a
// *ConfigError only when AddBuffer rejects buf as too large.
func New(buf []byte, opts ...Option) (*Context, error) {
	c := &Context{
		buffers: []*managedBuffer{{
			data:  make([]byte, numBins*sentinelRecordSize),
			index: 0,
		}},
	}
	for i := 0; i < numBins; i++ {
		head := c.binHead(i)
		writeHeader(head, sentinelDummySize, true)
		c.setPrev(head, head)
		c.setNext(head, head)
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.AddBuffer(buf); err != nil {
		return nil, err
	}
	return c, nil
}

// FreeMemory returns the sum of payload+overhead bytes across every FREE
// block currently tracked by c (spec.md §3 "Context counters").
func (c *Context) FreeMemory() int64 { return c.freeMemory }

// SetExternalAlloc installs or clears (pass nil) the Grower used as a
// fallback on exhaustion (spec.md §4.7, §6).
func (c *Context) SetExternalAlloc(g Grower) { c.grower = g }

const maxBufferLen = math.MaxInt32

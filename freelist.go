package segalloc

// Each bin is a circular doubly linked list of FREE blocks headed by a
// dummy sentinel node. Sentinels live in Context's own private buffer
// (buffers[0], never exposed to callers) rather than inside any caller
// buffer, but use the same free-header layout so the link-manipulation code
// below needs no special casing for "is this node a sentinel".
//
// A bin is empty iff its sentinel's next points back to itself (invariant
// 6 of spec.md §3). Chunks are inserted just before the first strictly
// larger chunk — equivalently at the end of the equal-size run — giving
// LRU-for-equal-sizes lookup semantics (spec.md §3, §4.2).

func (c *Context) binHead(bin int) chunkRef {
	return chunkRef{buf: c.buffers[0], off: int32(bin) * sentinelRecordSize}
}

func (c *Context) binIsEmpty(bin int) bool {
	head := c.binHead(bin)
	return sameRef(c.nextOf(head), head)
}

// insertBefore splices newChunk into the list immediately before at.
func (c *Context) insertBefore(at, newChunk chunkRef) {
	p := c.prevOf(at)
	c.setNext(p, newChunk)
	c.setPrev(newChunk, p)
	c.setNext(newChunk, at)
	c.setPrev(at, newChunk)
}

// unlinkFree removes r (a FREE block, or a sentinel) from whatever circular
// list it currently belongs to.
func (c *Context) unlinkFree(r chunkRef) {
	p, n := c.prevOf(r), c.nextOf(r)
	c.setNext(p, n)
	c.setPrev(n, p)
}

// findChunk walks bin's list forward from the head and returns the first
// chunk with size >= need, or the head sentinel itself if none qualifies
// (spec.md §4.2).
func (c *Context) findChunk(bin int, need int32) chunkRef {
	head := c.binHead(bin)
	for cur := c.nextOf(head); !sameRef(cur, head); cur = c.nextOf(cur) {
		if sz, _ := readHeader(cur); sz >= need {
			return cur
		}
	}
	return head
}

// findUpperChunk is findChunk with a strict > predicate; used on insertion
// to preserve the LRU-for-equal-sizes ordering described in spec.md §3.
func (c *Context) findUpperChunk(bin int, size int32) chunkRef {
	head := c.binHead(bin)
	for cur := c.nextOf(head); !sameRef(cur, head); cur = c.nextOf(cur) {
		if sz, _ := readHeader(cur); sz > size {
			return cur
		}
	}
	return head
}

// addFreeChunk writes a free header/footer covering `size` bytes at r and
// inserts it into the correct bin. It does not touch freeMemory — callers
// that are publishing newly-freed space are responsible for that (spec.md
// §4.2, §4.5).
func (c *Context) addFreeChunk(r chunkRef, size int32) {
	bin := findBin(size)
	at := c.findUpperChunk(bin, size)
	c.makeFree(r, size, chunkRef{}, chunkRef{})
	c.insertBefore(at, r)
}

package segalloc

// allocNeed converts a caller-requested payload size into the total block
// size (header + payload + footer, rounded up to the minimum free-chunk
// size so the block can always later be freed on its own) that Allocate
// must locate, per spec.md §4.4 step 1. It returns -1 if n is negative or
// the resulting block size would reach the 2 GiB bin ceiling: per spec.md
// §9's resolved open question, oversized requests above that ceiling are
// reported back as an ordinary allocation failure rather than asserting.
func allocNeed(n int) int32 {
	if n < 0 {
		return -1
	}
	need := int64(n) + MinInuseChunkSize
	if need < MinFreeChunkSize {
		need = MinFreeChunkSize
	}
	ceiling := binSizes[len(binSizes)-1]
	if need >= ceiling {
		return -1
	}
	return int32(need)
}

// locate implements spec.md §4.4 steps 3-4: starting at the bin whose floor
// is <= need, it finds the first chunk of size >= need without yet applying
// the last-chunk locality heuristic or growing. ok is false if no managed
// buffer currently holds a chunk large enough.
func (c *Context) locate(need int32) (chunk chunkRef, size int32, ok bool) {
	last := len(binSizes) - 1
	start := findBin(need)
	if start < 0 {
		return chunkRef{}, 0, false
	}

	b := start
	for b <= last && c.binIsEmpty(b) {
		b++
	}
	if b > last {
		return chunkRef{}, 0, false
	}

	cur := c.findChunk(b, need)
	if sameRef(cur, c.binHead(b)) {
		// Nothing in the starting bin itself qualifies; every bin strictly
		// above it is guaranteed to hold only chunks >= need (binSizes[b+1]
		// is already > need, by construction of findBin), so its first
		// element is a valid answer without a further size check.
		b2 := b + 1
		for b2 <= last && c.binIsEmpty(b2) {
			b2++
		}
		if b2 > last {
			return chunkRef{}, 0, false
		}
		cur = c.nextOf(c.binHead(b2))
	}

	sz, _ := readHeader(cur)
	return cur, sz, true
}

// splitChunk carves `requested` bytes off the front of the free chunk r
// (whose current size is chunkSize), per spec.md §4.3. If what remains is
// too small to ever stand on its own as a free block it is absorbed into
// the returned block instead of becoming a new, unusable remainder. The
// remainder, if any, is published as a free chunk and recorded as the new
// last-chunk locality hint. Returns r and the final size actually stamped
// on it (>= requested).
func (c *Context) splitChunk(r chunkRef, chunkSize, requested int32) (chunkRef, int32) {
	leftover := chunkSize - requested
	final := requested
	if leftover < MinFreeChunkSize {
		final += leftover
	} else {
		remainder := r.at(final)
		c.addFreeChunk(remainder, leftover)
		c.lastChunk = remainder
		c.lastChunkSize = leftover
	}
	makeUsed(r, final)
	c.freeMemory -= int64(final)
	return r, final
}

// Allocate returns a slice of at least n bytes carved out of c's managed
// buffers, or nil if n is invalid or no buffer (including any grown via the
// registered Grower) can satisfy it (spec.md §4.4, §6 `allocate`).
func (c *Context) Allocate(n int) []byte {
	need := allocNeed(n)
	if need < 0 {
		return nil
	}

	if int64(need) > c.freeMemory {
		if !c.grow(need) {
			return nil
		}
	}

	chunk, size, ok := c.locate(need)
	if !ok {
		if !c.grow(need) {
			return nil
		}
		chunk, size, ok = c.locate(need)
		if !ok {
			return nil
		}
	}

	// Locality heuristic (spec.md §4.4 step 5): a small request that fits
	// in the chunk most recently split off is served from there instead,
	// on the theory that repeated small allocations right after a big one
	// (e.g. a header followed by its payload) benefit from being adjacent.
	if size > need && c.lastChunkSize != 0 && need <= c.lastChunkSize && need <= MaxSmallRequest {
		chunk, size = c.lastChunk, c.lastChunkSize
	}

	c.unlinkFree(chunk)
	if sameRef(chunk, c.lastChunk) {
		c.lastChunk, c.lastChunkSize = chunkRef{}, 0
	}

	final, finalSize := c.splitChunk(chunk, size, need)
	return final.payload(finalSize)[:n]
}

// Callocate is Allocate for count*size bytes, zero-filled, per spec.md
// §4.4's callocate variant. It returns nil on overflow or if the
// multiplication or the resulting allocation itself fails.
func (c *Context) Callocate(count, size int) []byte {
	if count < 0 || size < 0 {
		return nil
	}
	total := int64(count) * int64(size)
	if count != 0 && total/int64(count) != int64(size) {
		return nil // overflow
	}
	if total >= binSizes[len(binSizes)-1] {
		return nil
	}
	p := c.Allocate(int(total))
	if p == nil {
		return nil
	}
	clear(p)
	return p
}

// releaseChunk implements the coalescing half of spec.md §4.5 `free`: given
// a block of `size` bytes at header (already detached from any in-use
// state — its own header/footer need not be valid INUSE tags, only the
// neighbouring blocks' tags are consulted), it merges with a FREE
// predecessor and/or successor and republishes the result as a single free
// chunk, incrementing freeMemory by the original `size` (the neighbours'
// sizes were already counted as free before the merge).
//
// A freed block that absorbs the current last-chunk hint through coalescing
// repoints the hint at the merged result (at its new, larger size) instead
// of simply clearing it: the merged block occupies the same base address
// the hint already pointed near, so a small allocation immediately
// following still benefits from the locality heuristic (spec.md §8
// scenario 4 only holds under this reading).
func (c *Context) releaseChunk(header chunkRef, size int32) {
	c.freeMemory += int64(size)
	inheritedHint := false

	if prevSize, prevFree := readRawSize(header.buf, header.off-footerSize); prevFree {
		prevHeader := header.at(-prevSize)
		c.unlinkFree(prevHeader)
		if sameRef(prevHeader, c.lastChunk) {
			inheritedHint = true
		}
		header = prevHeader
		size += prevSize
	}

	nextOff := header.off + size
	if int(nextOff) <= len(header.buf.data)-footerSize {
		if nextSize, nextFree := readRawSize(header.buf, nextOff); nextFree {
			nextHeader := chunkRef{buf: header.buf, off: nextOff}
			c.unlinkFree(nextHeader)
			if sameRef(nextHeader, c.lastChunk) {
				inheritedHint = true
			}
			size += nextSize
		}
	}

	c.addFreeChunk(header, size)
	if inheritedHint {
		c.lastChunk, c.lastChunkSize = header, size
	}
}

// Free releases a slice previously returned by Allocate, Callocate or
// Reallocate back to c, coalescing it with any free neighbours (spec.md
// §4.5). Freeing nil is a no-op. Freeing anything else is a programmer
// error: a pointer c never handed out, or one already freed, panics rather
// than silently corrupting the free lists (spec.md §7.2).
func (c *Context) Free(p []byte) {
	if p == nil {
		return
	}
	loc, ok := c.locatePayload(p)
	if !ok {
		fatalf("free of a pointer not owned by this context")
	}
	header := chunkRef{buf: loc.buf, off: loc.headerOff}
	size, free := readHeader(header)
	if free {
		fatalf("double free")
	}
	if fsize, ffree := readFooter(header, size); ffree || fsize != size {
		fatalf("corrupted block footer")
	}
	c.releaseChunk(header, size)
}

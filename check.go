package segalloc

import "fmt"

// Check walks every bin's free list and verifies the structural invariants
// of spec.md §3: each block it finds is tagged FREE, its header and footer
// agree on size, its prev/next links are mutually consistent with its
// neighbours, and it lives in the bin its size maps to. It also verifies
// that free_memory equals the sum of every free block's size, once the
// walk completes. Check never mutates state; spec.md §7.3 leaves the
// response to corruption (halt, log, reinitialize) to the caller.
func (c *Context) Check() error {
	remaining := c.freeMemory

	for bin := 0; bin < numBins; bin++ {
		head := c.binHead(bin)
		if hsize, hfree := readHeader(head); !hfree || hsize != sentinelDummySize {
			return &CorruptionError{Bin: bin, Off: head.off, Buffer: head.buf.index, Reason: "bin head sentinel does not carry FREE status and the dummy size"}
		}
		prev := head

		for cur := c.nextOf(head); !sameRef(cur, head); cur = c.nextOf(cur) {
			size, free := readHeader(cur)
			if !free {
				return &CorruptionError{Bin: bin, Off: cur.off, Buffer: cur.buf.index, Reason: "block linked into a free list is not tagged FREE"}
			}
			if fsize, ffree := readFooter(cur, size); !ffree || fsize != size {
				return &CorruptionError{Bin: bin, Off: cur.off, Buffer: cur.buf.index, Reason: "header and footer disagree on block size/status"}
			}
			if !sameRef(c.prevOf(cur), prev) {
				return &CorruptionError{Bin: bin, Off: cur.off, Buffer: cur.buf.index, Reason: "prev link does not point back to predecessor"}
			}
			if findBin(size) != bin {
				return &CorruptionError{Bin: bin, Off: cur.off, Buffer: cur.buf.index, Reason: "block's size does not belong in this bin"}
			}

			remaining -= int64(size)
			prev = cur
		}

		if !sameRef(c.prevOf(head), prev) {
			return &CorruptionError{Bin: bin, Off: head.off, Buffer: head.buf.index, Reason: "tail of list does not link back to the head sentinel"}
		}
	}

	if remaining != 0 {
		return &CorruptionError{Reason: fmt.Sprintf("free_memory accounting drifted by %d bytes", remaining)}
	}
	return nil
}

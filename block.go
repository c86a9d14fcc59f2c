package segalloc

import "encoding/binary"

// Every block of a managed buffer starts with a 4 byte header and ends with
// a 4 byte footer. The header/footer word packs a FREE/INUSE status bit into
// the top bit of a uint32 together with the 31 bit size of the block
// (header + payload + footer, in bytes).
//
// Free blocks additionally carry two 8 byte link fields right after the
// header: prev and next, encoding a chunkRef (see ref.go) rather than a raw
// pointer, so the doubly linked free list survives being walked across
// several independently supplied buffers without ever aliasing Go memory
// unsafely.
const (
	headerSize = 4
	footerSize = 4
	linkSize   = 8

	// freeHeaderSize is the header of a FREE block: status|size, prev, next.
	freeHeaderSize = headerSize + linkSize + linkSize

	statusFreeBit uint32 = 1 << 31
	sizeMask      uint32 = statusFreeBit - 1

	// MinFreeChunkSize is the minimum size a free block can have: it must be
	// able to hold a free header and a footer.
	MinFreeChunkSize = freeHeaderSize + footerSize

	// MinInuseChunkSize is the fixed overhead (header + footer) of an
	// in-use block, independent of payload size.
	MinInuseChunkSize = headerSize + footerSize

	// MaxSmallRequest is the largest request size eligible for the
	// last-chunk locality heuristic (§4.4 step 5).
	MaxSmallRequest = 256

	// sentinelRecordSize is the footprint of a bin-head sentinel; it reuses
	// the free header layout (size, prev, next) but carries no footer since
	// a sentinel is never coalesced or walked backwards into.
	sentinelRecordSize = freeHeaderSize

	// sentinelDummySize is the size word every bin-head sentinel carries
	// (spec.md §4.8: "the head has FREE status and carries the dummy
	// size"). It is never a real block size a chunk could have, since it
	// is read back only from Context.binHead's own header word.
	sentinelDummySize = freeHeaderSize
)

func packSize(size int32, free bool) uint32 {
	w := uint32(size)
	if free {
		w |= statusFreeBit
	}
	return w
}

func unpackSize(w uint32) (size int32, free bool) {
	return int32(w & sizeMask), w&statusFreeBit != 0
}

// readHeader returns the size and FREE/INUSE status of the block at r.
func readHeader(r chunkRef) (size int32, free bool) {
	return unpackSize(binary.LittleEndian.Uint32(r.bytes(headerSize)))
}

func writeHeader(r chunkRef, size int32, free bool) {
	binary.LittleEndian.PutUint32(r.bytes(headerSize), packSize(size, free))
}

// readFooter reads the footer belonging to the block of size `size` starting
// at r.
func readFooter(r chunkRef, size int32) (fsize int32, free bool) {
	return unpackSize(binary.LittleEndian.Uint32(r.at(size - footerSize).bytes(footerSize)))
}

func writeFooter(r chunkRef, size int32, free bool) {
	binary.LittleEndian.PutUint32(r.at(size-footerSize).bytes(footerSize), packSize(size, free))
}

// readLink/writeLink access the prev (slot 0) / next (slot 1) fields of a
// FREE block's header, immediately following the size/status word.
func (c *Context) readLink(r chunkRef, slot int) chunkRef {
	off := headerSize + slot*linkSize
	v := binary.LittleEndian.Uint64(r.at(int32(off)).bytes(linkSize))
	return c.decodeRef(v)
}

func (c *Context) writeLink(r chunkRef, slot int, v chunkRef) {
	off := headerSize + slot*linkSize
	binary.LittleEndian.PutUint64(r.at(int32(off)).bytes(linkSize), c.encodeRef(v))
}

func (c *Context) prevOf(r chunkRef) chunkRef     { return c.readLink(r, 0) }
func (c *Context) nextOf(r chunkRef) chunkRef     { return c.readLink(r, 1) }
func (c *Context) setPrev(r chunkRef, v chunkRef) { c.writeLink(r, 0, v) }
func (c *Context) setNext(r chunkRef, v chunkRef) { c.writeLink(r, 1, v) }

// payload returns the in-use block's payload slice: the bytes strictly
// between the header and the footer.
func (r chunkRef) payload(size int32) []byte {
	return r.buf.data[r.off+headerSize : r.off+size-footerSize]
}

// makeFree stamps a FREE block of `size` bytes at r, with the given prev/next
// links, and writes the matching footer.
func (c *Context) makeFree(r chunkRef, size int32, prev, next chunkRef) {
	writeHeader(r, size, true)
	c.setPrev(r, prev)
	c.setNext(r, next)
	writeFooter(r, size, true)
}

// makeUsed stamps an INUSE block of `size` bytes at r (header + footer only;
// the payload bytes in between are left untouched for the caller to fill).
func makeUsed(r chunkRef, size int32) {
	writeHeader(r, size, false)
	writeFooter(r, size, false)
}

// readRawSize reads the size/status word located at an arbitrary byte
// offset in buf, without going through a chunkRef. Used to peek at a
// neighbouring block's footer or header during coalescing, where the
// neighbour's identity (and thus the size needed to build a chunkRef to it)
// isn't known yet.
func readRawSize(buf *managedBuffer, off int32) (size int32, free bool) {
	return unpackSize(binary.LittleEndian.Uint32(buf.data[off : off+4]))
}

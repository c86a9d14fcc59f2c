package segalloc

// AddBuffer feeds another caller-supplied []byte to c as additional managed
// space (spec.md §4.7 `add_buffer`). It installs INUSE sentinel blocks at
// both ends of buf so that coalescing logic (releaseChunk in alloc.go) can read the previous
// footer / next header unconditionally without bounds checks — sentinels
// are never FREE, so they terminate any merge. Buffers too small to carry
// both sentinels plus one minimum free chunk are silently ignored, per
// spec.md §4.7.
func (c *Context) AddBuffer(buf []byte) error {
	if len(buf) > maxBufferLen {
		return configErrorf("AddBuffer", "buffer of %d bytes exceeds the %d byte limit", len(buf), maxBufferLen)
	}

	need := 2*MinInuseChunkSize + MinFreeChunkSize
	if len(buf) < need {
		return nil
	}

	mb := &managedBuffer{data: buf, index: int32(len(c.buffers))}
	c.buffers = append(c.buffers, mb)

	leftSentinel := chunkRef{buf: mb, off: 0}
	makeUsed(leftSentinel, MinInuseChunkSize)

	interiorSize := int32(len(buf)) - 2*MinInuseChunkSize
	interior := chunkRef{buf: mb, off: MinInuseChunkSize}

	rightSentinel := chunkRef{buf: mb, off: int32(len(buf)) - MinInuseChunkSize}
	makeUsed(rightSentinel, MinInuseChunkSize)

	c.addFreeChunk(interior, interiorSize)
	c.freeMemory += int64(interiorSize)
	return nil
}

// grow is spec.md §4.7's `out_of_memory`: invoked by Allocate when no
// managed buffer can serve `need` bytes. It asks the registered Grower for
// need + 2*MinInuseChunkSize bytes of headroom for fresh sentinels, feeds
// the returned region to AddBuffer, and reports whether the region was
// usable. It never retries more than once; the caller (Allocate) is
// responsible for re-attempting the original search afterwards.
func (c *Context) grow(need int32) bool {
	if c.grower == nil {
		return false
	}

	want := int(need) + 2*MinInuseChunkSize
	region, actual := c.grower.Grow(want)
	if region == nil || actual < want || len(region) < want {
		return false
	}

	if err := c.AddBuffer(region); err != nil {
		return false
	}
	return true
}

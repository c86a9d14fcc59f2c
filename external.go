package segalloc

// Grower is the Go name for spec.md §4.7/§6's "external allocator"
// callback: invoked with the minimum number of bytes the core needs when
// every managed buffer is exhausted. It must return a region of at least
// that many bytes, and the actual size of the region it returned; a nil
// slice, or one shorter than requested, is treated as decline-to-grow.
//
// Implementations live in package growth; segalloc itself only depends on
// this interface, exactly as lldb depends on the abstract Filer/FLT
// interfaces rather than a concrete storage backend.
type Grower interface {
	Grow(minSize int) (region []byte, actualSize int)
}

// GrowerFunc adapts a plain function to the Grower interface.
type GrowerFunc func(minSize int) ([]byte, int)

func (f GrowerFunc) Grow(minSize int) ([]byte, int) { return f(minSize) }

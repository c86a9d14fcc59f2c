package segalloc

import "fmt"

// ConfigError reports a caller mistake detectable without touching any live
// block state: currently, a buffer larger than the supported maximum passed
// to New or AddBuffer (too-small buffers are ignored, not rejected). Grounded on the teacher's own constructor
// style (unsafex/malloc's NewBuddyAllocatorWithBlockSize returns a plain
// `error` built with fmt.Errorf for exactly this class of mistake).
type ConfigError struct {
	Op  string
	Msg string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("segalloc: %s: %s", e.Op, e.Msg) }

func configErrorf(op, format string, args ...any) *ConfigError {
	return &ConfigError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// CorruptionError is returned by Check when a structural invariant of
// spec.md §3 does not hold. It never mutates state and is not a panic: per
// spec.md §7.3, the caller decides whether to halt, log, or reinitialize.
type CorruptionError struct {
	Bin    int
	Off    int32
	Buffer int32
	Reason string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("segalloc: corruption in bin %d at buffer %d offset %#x: %s", e.Bin, e.Buffer, e.Off, e.Reason)
}

// fatalf panics with a segalloc-prefixed message. Used exclusively for
// programmer errors spec.md §7.2 classifies as fatal and non-recoverable:
// double free, freeing a pointer segalloc never handed out, freeing the
// context's own bookkeeping. Mirrors the teacher's own panic idiom (e.g.
// unsafex/malloc/buddy.go: `panic("buddy: double free or invalid block")`).
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf("segalloc: "+format, args...))
}

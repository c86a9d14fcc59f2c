package segalloc

// current is the process-wide context pointer the legacy, single-global
// entry points below operate on. Real code is expected to hold its own
// *Context and call its methods directly — the facade exists only for
// callers porting call sites that assumed one global heap (spec.md §4.9,
// DESIGN NOTES §9: "retains the legacy single-global entry points for
// compatibility").
var current *Context

// GetContext returns the process-wide Context installed by the most recent
// SetContext, or nil if none has been installed. New does not install the
// Context it creates — callers opt into the global facade explicitly.
func GetContext() *Context { return current }

// SetContext installs c as the process-wide Context used by the
// package-level Allocate/Free/Callocate/Reallocate/Check helpers below.
// Passing the Context produced by an earlier New (possibly after
// serializing and restoring its owned buffers) implements checkpoint and
// multi-heap usage at negligible cost (spec.md §4.9).
func SetContext(c *Context) { current = c }

// Allocate, Free, Callocate, Reallocate and Check below are thin wrappers
// over the current global Context's identically named methods, for callers
// using the single-global-heap facade instead of holding a *Context
// directly.

func Allocate(n int) []byte              { return current.Allocate(n) }
func Callocate(count, size int) []byte   { return current.Callocate(count, size) }
func Reallocate(p []byte, n int) []byte  { return current.Reallocate(p, n) }
func Free(p []byte)                      { current.Free(p) }
func Check() error                       { return current.Check() }

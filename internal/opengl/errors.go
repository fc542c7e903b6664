package opengl

import "fmt"

// InitError wraps a fatal windowing/context/shader-compile failure. The
// raw driver info log, if any, is carried verbatim in Log.
type InitError struct {
	Stage string // "window", "compute shader", "present program", ...
	Log   string
	Err   error
}

func (e *InitError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("opengl: init failed at %s: %s", e.Stage, e.Log)
	}
	return fmt.Sprintf("opengl: init failed at %s: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// AllocationError reports a buffer/VAO/texture creation that returned a
// zero handle, or a post-call context error.
type AllocationError struct {
	Resource string // "vertex buffer", "compute texture", ...
	Err      error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("opengl: failed to allocate %s: %v", e.Resource, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// LookupError reports access to a buffer/VAO/program by a name that was
// never registered — a programmer error, surfaced immediately rather than
// silently ignored.
type LookupError struct {
	Kind string // "program", "buffer", "vao"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("opengl: no %s registered under name %q", e.Kind, e.Name)
}

package opengl

import (
	"time"

	gl "github.com/go-gl/gl/v4.6-core/gl"
)

// WaitFence inserts a GPU fence and blocks the calling (render) thread
// until the GPU has retired every command issued before the call, or until
// timeout elapses, whichever comes first. It returns false on timeout and
// true otherwise; a timeout is never fatal, hence the bare bool return
// rather than an error.
//
// Grounded in original_source/gpu_rendering/compute_renderer.py's
// synchronize_gpu, which wraps glFenceSync/glClientWaitSync with a
// nanosecond timeout for benchmark instrumentation only; the render loop
// itself relies on implicit command ordering, never on this fence.
func WaitFence(timeout time.Duration) bool {
	sync := gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	if sync == nil {
		return false
	}
	defer gl.DeleteSync(sync)

	status := gl.ClientWaitSync(sync, gl.SYNC_FLUSH_COMMANDS_BIT, uint64(timeout.Nanoseconds()))
	switch status {
	case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
		return true
	default:
		return false
	}
}

package opengl

import (
	stdmath "math"

	gl "github.com/go-gl/gl/v4.6-core/gl"
)

// DynamicBuffer owns one GPU buffer object and implements a 1.5x growth
// policy: sub-data when the new payload fits within the current capacity,
// otherwise reallocate to max(needed, ceil(1.5*capacity)). It is
// target-agnostic (it takes the GL target at construction); both call
// sites use gl.ARRAY_BUFFER (the curvature grid's per-frame vertex upload
// and the particle renderer's quad stream), so the growth law is
// implemented once and exercised from both, grounded in
// original_source/gpu_rendering/buffer_manager.py's BufferManager.
type DynamicBuffer struct {
	handle    uint32
	target    uint32
	usage     uint32
	capacity  int // bytes
}

// NewDynamicBuffer allocates a buffer object for the given target
// (gl.ARRAY_BUFFER, gl.SHADER_STORAGE_BUFFER, ...) with the given usage
// hint (gl.DYNAMIC_DRAW, ...).
func NewDynamicBuffer(target, usage uint32) (*DynamicBuffer, error) {
	var handle uint32
	gl.GenBuffers(1, &handle)
	if handle == 0 {
		return nil, &AllocationError{Resource: "dynamic buffer"}
	}
	return &DynamicBuffer{handle: handle, target: target, usage: usage}, nil
}

// Handle returns the underlying GL buffer name.
func (b *DynamicBuffer) Handle() uint32 { return b.handle }

// Capacity returns the buffer's current allocated size in bytes.
func (b *DynamicBuffer) Capacity() int { return b.capacity }

// Upload writes data to the buffer, applying the 1.5x growth policy: if
// len(data) fits within the current capacity it sub-data writes in place
// and capacity is unchanged; otherwise the buffer is reallocated to the
// larger of len(data) and ceil(1.5*capacity), and capacity grows to that
// new size.
func (b *DynamicBuffer) Upload(data []byte) {
	gl.BindBuffer(b.target, b.handle)
	needed := len(data)
	if needed <= b.capacity {
		if needed > 0 {
			gl.BufferSubData(b.target, 0, needed, gl.Ptr(data))
		}
		return
	}

	newCap := nextCapacity(needed, b.capacity)
	gl.BufferData(b.target, newCap, nil, b.usage)
	if needed > 0 {
		gl.BufferSubData(b.target, 0, needed, gl.Ptr(data))
	}
	b.capacity = newCap
}

// nextCapacity computes the buffer capacity per the growth policy: the
// current capacity when needed fits within it, otherwise
// max(needed, ceil(1.5*capacity)).
func nextCapacity(needed, capacity int) int {
	if needed <= capacity {
		return capacity
	}
	grown := int(stdmath.Ceil(1.5 * float64(capacity)))
	if needed > grown {
		return needed
	}
	return grown
}

// Destroy releases the GPU buffer object.
func (b *DynamicBuffer) Destroy() {
	if b.handle != 0 {
		gl.DeleteBuffers(1, &b.handle)
		b.handle = 0
	}
}

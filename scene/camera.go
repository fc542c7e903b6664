package scene

import (
	stdmath "math"

	reMath "github.com/Nate534/black-hole/math"
)

// OrbitCamera orbits a fixed target at the origin by (azimuth, elevation,
// radius), deriving its world position each frame rather than storing it.
type OrbitCamera struct {
	Azimuth   float32 // radians, unbounded (wraps naturally through sin/cos)
	Elevation float32 // radians, clamped to (elevationMin, elevationMax)
	Radius    float32 // clamped to [MinRadius, MaxRadius]

	MinRadius, MaxRadius  float32
	OrbitSpeed, ZoomSpeed float32

	FOV, Aspect, Near, Far float32

	// Moving is true iff any drag or zoom delta occurred since the previous
	// frame; the frame orchestrator uses it to pick the compute target size.
	Moving bool
}

const (
	elevationMin = 0.01
	elevationMax = stdmath.Pi - 0.01
)

// NewOrbitCamera returns a camera at the given initial radius, framing the
// origin with the given FOV/aspect.
func NewOrbitCamera(radius, fov, aspect float32) *OrbitCamera {
	return &OrbitCamera{
		Azimuth:    0,
		Elevation:  stdmath.Pi / 2,
		Radius:     radius,
		MinRadius:  radius * 0.1,
		MaxRadius:  radius * 20,
		OrbitSpeed: 0.005,
		ZoomSpeed:  radius * 0.02,
		FOV:        fov,
		Aspect:     aspect,
		Near:       radius * 1e-4,
		Far:        radius * 1e4,
	}
}

// Orbit applies a mouse-drag delta (in pixels): azimuth += dx*orbitSpeed,
// elevation -= dy*orbitSpeed, clamped.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	c.Azimuth += dx * c.OrbitSpeed
	c.Elevation -= dy * c.OrbitSpeed
	if c.Elevation < elevationMin {
		c.Elevation = elevationMin
	} else if c.Elevation > elevationMax {
		c.Elevation = elevationMax
	}
	c.Moving = true
}

// Zoom applies a scroll delta: radius -= dy*zoomSpeed, clamped to
// [MinRadius, MaxRadius].
func (c *OrbitCamera) Zoom(dy float32) {
	if dy == 0 {
		return
	}
	c.Radius -= dy * c.ZoomSpeed
	if c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	} else if c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
	c.Moving = true
}

// ResetMoving clears the moving flag; called once per frame after the
// orchestrator has consumed it for compute-target sizing.
func (c *OrbitCamera) ResetMoving() {
	c.Moving = false
}

// Position derives the camera's world position from (azimuth, elevation,
// radius), target fixed at the origin: (r·sinθ·cosφ, r·cosθ, r·sinθ·sinφ).
func (c *OrbitCamera) Position() reMath.Vec3 {
	sinE, cosE := stdmath.Sincos(float64(c.Elevation))
	sinA, cosA := stdmath.Sincos(float64(c.Azimuth))
	return reMath.Vec3{
		X: c.Radius * float32(sinE) * float32(cosA),
		Y: c.Radius * float32(cosE),
		Z: c.Radius * float32(sinE) * float32(sinA),
	}
}

// Basis returns the orthonormal (forward, right, up) camera frame looking
// at the origin from the current position, matching the camera uniform
// block's right/up/forward fields.
func (c *OrbitCamera) Basis() (forward, right, up reMath.Vec3) {
	pos := c.Position()
	forward = reMath.Vec3Zero.Sub(pos).Normalize()
	right = forward.Cross(reMath.Vec3Up).Normalize()
	up = right.Cross(forward).Normalize()
	return
}

// ViewMatrix returns the look-at matrix for the current orbit state.
func (c *OrbitCamera) ViewMatrix() reMath.Mat4 {
	return reMath.Mat4LookAt(c.Position(), reMath.Vec3Zero, reMath.Vec3Up)
}

// ProjectionMatrix returns the perspective matrix for the current FOV,
// aspect ratio, and near/far planes.
func (c *OrbitCamera) ProjectionMatrix() reMath.Mat4 {
	return reMath.Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// UpdateAspect is called from the framebuffer-resize callback.
func (c *OrbitCamera) UpdateAspect(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

// TanHalfFOV returns tan(fov/2), the camera uniform block's ray-spread
// factor.
func (c *OrbitCamera) TanHalfFOV() float32 {
	return float32(stdmath.Tan(float64(c.FOV) / 2))
}

// FreeFlyCamera is an alternative WASD/QE translation + mouse-look camera,
// kept separate from OrbitCamera since it has no "moving" semantics
// relevant to compute-target sizing.
type FreeFlyCamera struct {
	Position reMath.Vec3
	Yaw      float32 // radians, rotation about +Y
	Pitch    float32 // radians, clamped to avoid gimbal flip

	FOV, Aspect, Near, Far float32
	MoveSpeed              float32
}

func NewFreeFlyCamera(pos reMath.Vec3, fov, aspect float32) *FreeFlyCamera {
	return &FreeFlyCamera{
		Position:  pos,
		FOV:       fov,
		Aspect:    aspect,
		Near:      1,
		Far:       1e15,
		MoveSpeed: 1e9,
	}
}

func (c *FreeFlyCamera) rotation() reMath.Quaternion {
	yawQ := reMath.QuaternionFromAxisAngle(reMath.Vec3Up, c.Yaw)
	pitchQ := reMath.QuaternionFromAxisAngle(reMath.Vec3Right, c.Pitch)
	return yawQ.Mul(pitchQ).Normalize()
}

// Forward, Right, and Up return the camera's orthonormal basis vectors.
func (c *FreeFlyCamera) Forward() reMath.Vec3 {
	return c.rotation().RotateVector(reMath.Vec3Front)
}

func (c *FreeFlyCamera) Right() reMath.Vec3 {
	return c.rotation().RotateVector(reMath.Vec3Right)
}

func (c *FreeFlyCamera) Up() reMath.Vec3 {
	return c.rotation().RotateVector(reMath.Vec3Up)
}

// Look applies a mouse-drag delta to yaw/pitch, clamping pitch to avoid
// flipping over the poles.
func (c *FreeFlyCamera) Look(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	const limit = stdmath.Pi/2 - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	} else if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// Move translates the camera by WASD/QE input, each component in [-1, 1],
// scaled by MoveSpeed and dt: forward and right follow the camera's own
// basis vectors, while up follows the world up axis.
func (c *FreeFlyCamera) Move(forwardAxis, rightAxis, upAxis, dt float32) {
	if forwardAxis == 0 && rightAxis == 0 && upAxis == 0 {
		return
	}
	delta := c.Forward().Mul(forwardAxis).
		Add(c.Right().Mul(rightAxis)).
		Add(reMath.Vec3Up.Mul(upAxis))
	if delta.LengthSqr() > 0 {
		delta = delta.Normalize()
	}
	c.Position = c.Position.Add(delta.Mul(c.MoveSpeed * dt))
}

func (c *FreeFlyCamera) ViewMatrix() reMath.Mat4 {
	return reMath.Mat4LookAt(c.Position, c.Position.Add(c.Forward()), reMath.Vec3Up)
}

func (c *FreeFlyCamera) ProjectionMatrix() reMath.Mat4 {
	return reMath.Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

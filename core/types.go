package core

import (
	"github.com/Nate534/black-hole/math"
)

// Color is a straight RGBA color, channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// Vertex is a line-list vertex: world-space position plus a per-vertex
// color. Used by the curvature grid, which needs neither normals nor UVs.
type Vertex struct {
	Position math.Vec3
	Color    Color
}

// Transform is a position/rotation pair; nothing in this module uses it
// (FreeFlyCamera keeps its own position, yaw and pitch). There is no
// per-object scale or hierarchy in this scene model.
type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
	}
}

func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Front)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}

package physics

import (
	"math"

	reMath "github.com/Nate534/black-hole/math"
)

// Ray is the integrator state for a single null geodesic: spherical position
// and its affine-parameter derivatives, plus the conserved constants L and E
// captured once at initialization. This is the CPU oracle used by the test
// suite; the GPU compute shader steps the identical six-vector state in
// GLSL (internal/opengl/shaders.go).
//
// Grounded on original_source/python/cpu_geodesic.py's Ray class.
type Ray struct {
	Rs float64 // Schwarzschild radius of the hole this ray orbits

	R, Theta, Phi    float64
	Dr, Dtheta, Dphi float64

	L float64 // conserved axial angular momentum
	E float64 // conserved energy-like integral

	// Cartesian position, recomputed after every accepted step.
	X, Y, Z float64

	Captured bool // true once r <= rs; no further steps are taken
}

// NewRay initializes a ray from a Cartesian position and unit direction,
// deriving the spherical state and its conserved L and E.
func NewRay(pos, dir reMath.Vec3, rs float64) *Ray {
	px, py, pz := float64(pos.X), float64(pos.Y), float64(pos.Z)
	dx, dy, dz := float64(dir.X), float64(dir.Y), float64(dir.Z)

	r, theta, phi := reMath.CartesianToSpherical(px, py, pz)
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	if math.Abs(sinTheta) < 1e-12 {
		sinTheta = math.Copysign(1e-12, sinTheta)
		if sinTheta == 0 {
			sinTheta = 1e-12
		}
	}

	dr :=sinTheta*cosPhi*dx + sinTheta*sinPhi*dy + cosTheta*dz
	dtheta := (cosTheta*cosPhi*dx + cosTheta*sinPhi*dy - sinTheta*dz) / r
	dphi := (-sinPhi*dx + cosPhi*dy) / (r * sinTheta)

	l := r * r * sinTheta * dphi
	f := MetricFactor(r, rs)
	dtDlam := math.Sqrt((dr*dr/f + r*r*(dtheta*dtheta+sinTheta*sinTheta*dphi*dphi)) / f)
	e := f * dtDlam

	ray := &Ray{
		Rs: rs,
		R:  r, Theta: theta, Phi: phi,
		Dr: dr, Dtheta: dtheta, Dphi: dphi,
		L: l, E: e,
	}
	ray.X, ray.Y, ray.Z = px, py, pz
	return ray
}

// geodesicState is the six-vector (r, theta, phi, dr, dtheta, dphi) carried
// through RK4.
type geodesicState [6]float64

// derivative evaluates the right-hand side of the Schwarzschild null
// geodesic equations at the given state, using this ray's conserved E and
// Rs.
//
// The polar singularity (sinTheta -> 0) is handled by clamping |cosTheta|
// strictly below 1 before computing dphi's derivative term.
func (ray *Ray) derivative(s geodesicState) geodesicState {
	r, theta := s[0], s[1]
	dr, dtheta, dphi := s[3], s[4], s[5]

	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)
	if cosTheta > 1-1e-12 {
		cosTheta = 1 - 1e-12
	} else if cosTheta < -(1 - 1e-12) {
		cosTheta = -(1 - 1e-12)
	}
	if math.Abs(sinTheta) < 1e-12 {
		sinTheta = math.Copysign(1e-12, sinTheta)
		if sinTheta == 0 {
			sinTheta = 1e-12
		}
	}

	f := MetricFactor(r, ray.Rs)
	dtDlam := ray.E / f

	rAcc := -(ray.Rs/(2*r*r))*f*dtDlam*dtDlam +
		(ray.Rs/(2*r*r*f))*dr*dr +
		r*(dtheta*dtheta+sinTheta*sinTheta*dphi*dphi)
	thetaAcc := -(2.0/r)*dr*dtheta + sinTheta*cosTheta*dphi*dphi
	phiAcc := -(2.0/r)*dr*dphi - 2.0*(cosTheta/sinTheta)*dtheta*dphi

	return geodesicState{dr, dtheta, dphi, rAcc, thetaAcc, phiAcc}
}

func (s geodesicState) scaleAdd(k geodesicState, scale float64) geodesicState {
	var out geodesicState
	for i := range s {
		out[i] = s[i] + k[i]*scale
	}
	return out
}

// Step advances the ray by one classical RK4 step of size dlam. It is a
// no-op once the ray is captured.
func (ray *Ray) Step(dlam float64) {
	if ray.Captured || ray.R <= ray.Rs {
		ray.Captured = true
		return
	}

	s0 := geodesicState{ray.R, ray.Theta, ray.Phi, ray.Dr, ray.Dtheta, ray.Dphi}

	k1 := ray.derivative(s0)
	k2 := ray.derivative(s0.scaleAdd(k1, dlam/2))
	k3 := ray.derivative(s0.scaleAdd(k2, dlam/2))
	k4 := ray.derivative(s0.scaleAdd(k3, dlam))

	var s1 geodesicState
	for i := range s0 {
		s1[i] = s0[i] + (dlam/6.0)*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	ray.R, ray.Theta, ray.Phi = s1[0], s1[1], s1[2]
	ray.Dr, ray.Dtheta, ray.Dphi = s1[3], s1[4], s1[5]

	if ray.R <= ray.Rs {
		ray.Captured = true
	}

	ray.X, ray.Y, ray.Z = reMath.SphericalToCartesian(ray.R, ray.Theta, ray.Phi)
}

// StepScale returns the per-ray affine-parameter step dlam = k*r, sized so
// that rs-scale features are resolved by at least 50 steps.
func StepScale(r float64) float64 {
	return r / 100.0
}

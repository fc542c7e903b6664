package physics

import (
	stdmath "math"

	reMath "github.com/Nate534/black-hole/math"
)

// IntegratorMethod selects a numerical integration scheme for the
// standalone Newtonian particle demo (cmd/particledemo). The geodesic
// renderer always uses RK4; these variants exist only for the
// non-interacting particle engine, grounded in
// original_source/physics/integrator.py's integrate_euler/_rk4/_verlet.
type IntegratorMethod int

const (
	IntegratorEuler IntegratorMethod = iota
	IntegratorVerlet
	IntegratorRK4
)

// GravityParticle is a single Newtonian test particle orbiting a BlackHole
// under plain inverse-square gravity (no geodesic curvature) — a
// non-interacting demo kept separate from the geodesic renderer.
type GravityParticle struct {
	Position reMath.Vec3f64
	Velocity reMath.Vec3f64
	Mass     float64
	Active   bool

	prevAccel reMath.Vec3f64 // used by Verlet
	hasPrev   bool
}

// gravAccel returns the Newtonian gravitational acceleration on a unit test
// mass at pos due to the black hole, F/m = -GM/r^2 * rhat.
func gravAccel(pos reMath.Vec3f64, bh *BlackHole) reMath.Vec3f64 {
	center := reMath.Vec3f64{X: float64(bh.Position.X), Y: float64(bh.Position.Y), Z: float64(bh.Position.Z)}
	d := pos.Sub(center)
	r2 := d.Dot(d)
	if r2 == 0 {
		return reMath.Vec3f64{}
	}
	r := stdmath.Sqrt(r2)
	invR3 := -G * bh.Mass / (r2 * r)
	return reMath.Vec3f64{X: d.X * invR3, Y: d.Y * invR3, Z: d.Z * invR3}
}

// Integrate advances every active particle by dt using the given method.
func Integrate(particles []*GravityParticle, bh *BlackHole, dt float64, method IntegratorMethod) {
	switch method {
	case IntegratorEuler:
		integrateEuler(particles, bh, dt)
	case IntegratorVerlet:
		integrateVerlet(particles, bh, dt)
	default:
		integrateRK4(particles, bh, dt)
	}
}

func integrateEuler(particles []*GravityParticle, bh *BlackHole, dt float64) {
	for _, p := range particles {
		if !p.Active {
			continue
		}
		a := gravAccel(p.Position, bh)
		p.Velocity = p.Velocity.Add(a.Scale(dt))
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}
}

func integrateVerlet(particles []*GravityParticle, bh *BlackHole, dt float64) {
	for _, p := range particles {
		if !p.Active {
			continue
		}
		a0 := p.prevAccel
		if !p.hasPrev {
			a0 = gravAccel(p.Position, bh)
		}
		p.Position = p.Position.Add(p.Velocity.Scale(dt)).Add(a0.Scale(0.5 * dt * dt))
		a1 := gravAccel(p.Position, bh)
		p.Velocity = p.Velocity.Add(a0.Add(a1).Scale(0.5 * dt))
		p.prevAccel = a1
		p.hasPrev = true
	}
}

func integrateRK4(particles []*GravityParticle, bh *BlackHole, dt float64) {
	for _, p := range particles {
		if !p.Active {
			continue
		}
		pos0, vel0 := p.Position, p.Velocity

		k1v := gravAccel(pos0, bh)
		k1p := vel0

		pos1 := pos0.Add(k1p.Scale(dt / 2))
		vel1 := vel0.Add(k1v.Scale(dt / 2))
		k2v := gravAccel(pos1, bh)
		k2p := vel1

		pos2 := pos0.Add(k2p.Scale(dt / 2))
		vel2 := vel0.Add(k2v.Scale(dt / 2))
		k3v := gravAccel(pos2, bh)
		k3p := vel2

		pos3 := pos0.Add(k3p.Scale(dt))
		vel3 := vel0.Add(k3v.Scale(dt))
		k4v := gravAccel(pos3, bh)
		k4p := vel3

		p.Position = pos0.Add(sumScaled(k1p, k2p, k3p, k4p).Scale(dt / 6))
		p.Velocity = vel0.Add(sumScaled(k1v, k2v, k3v, k4v).Scale(dt / 6))
	}
}

func sumScaled(a, b, c, d reMath.Vec3f64) reMath.Vec3f64 {
	return reMath.Vec3f64{
		X: a.X + 2*b.X + 2*c.X + d.X,
		Y: a.Y + 2*b.Y + 2*c.Y + d.Y,
		Z: a.Z + 2*b.Z + 2*c.Z + d.Z,
	}
}

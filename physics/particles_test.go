package physics

import (
	"math"
	"testing"

	reMath "github.com/Nate534/black-hole/math"
)

func circularOrbitParticle(bh *BlackHole, r float64) *GravityParticle {
	speed := math.Sqrt(G * bh.Mass / r)
	return &GravityParticle{
		Position: reMath.Vec3f64{X: r, Y: 0, Z: 0},
		Velocity: reMath.Vec3f64{X: 0, Y: 0, Z: speed},
		Mass:     1,
		Active:   true,
	}
}

func TestRK4HoldsCircularOrbitCloserThanEuler(t *testing.T) {
	bh, err := NewBlackHole(1.98892e30, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	r := 1.5e11 // roughly 1 AU

	euler := []*GravityParticle{circularOrbitParticle(bh, r)}
	rk4 := []*GravityParticle{circularOrbitParticle(bh, r)}

	const dt = 3600.0 // 1 hour substeps
	const steps = 24 * 30 // one month

	for i := 0; i < steps; i++ {
		Integrate(euler, bh, dt, IntegratorEuler)
		Integrate(rk4, bh, dt, IntegratorRK4)
	}

	radiusOf := func(p *GravityParticle) float64 {
		return math.Sqrt(p.Position.Dot(p.Position))
	}
	eulerDrift := math.Abs(radiusOf(euler[0])-r) / r
	rk4Drift := math.Abs(radiusOf(rk4[0])-r) / r

	if rk4Drift >= eulerDrift {
		t.Errorf("RK4 radius drift (%g) should be smaller than Euler's (%g) over a one-month orbit", rk4Drift, eulerDrift)
	}
}

func TestIntegrateSkipsInactiveParticles(t *testing.T) {
	bh, err := NewBlackHole(1.98892e30, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	p := circularOrbitParticle(bh, 1.5e11)
	p.Active = false
	before := p.Position

	Integrate([]*GravityParticle{p}, bh, 3600, IntegratorRK4)

	if p.Position != before {
		t.Errorf("inactive particle moved: before=%v after=%v", before, p.Position)
	}
}

func TestGravAccelZeroAtCenter(t *testing.T) {
	bh, err := NewBlackHole(1.98892e30, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	a := gravAccel(reMath.Vec3f64{}, bh)
	if a != (reMath.Vec3f64{}) {
		t.Errorf("gravAccel at the singularity = %v, want zero vector", a)
	}
}

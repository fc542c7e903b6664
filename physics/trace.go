package physics

import (
	"math"

	reMath "github.com/Nate534/black-hole/math"
)

// Outcome is the terminal classification of a traced ray, in tie-break
// priority order: horizon > occluder > disk > escape.
type Outcome int

const (
	OutcomeEscaped Outcome = iota
	OutcomeHorizon
	OutcomeOccluder
	OutcomeDisk
)

// Result is the terminal state of a traced ray: which outcome, plus the
// hit object's index (Occluder) or the disk color (Disk); Horizon/Escaped
// carry neither, and the caller paints them with the fixed
// horizon/background colors.
type Result struct {
	Outcome    Outcome
	ObjectIdx  int        // valid when Outcome == OutcomeOccluder
	DiskColor  [3]float32 // valid when Outcome == OutcomeDisk
	Steps      int
	FinalR     float64
}

// Scene is the minimal read-only view Trace needs: the primary hole, its
// disk, and ancillary occluders. scene.Scene satisfies this via a thin
// accessor (see scene/scene.go).
type Scene struct {
	BlackHole *BlackHole
	Disk      Disk
	Objects   []Object
}

// diskColorAt samples the procedural banded/spiral disk pattern at a
// crossing point, parameterized by (rho, atan2(z,x), num) and modulated by
// a 1/rho Doppler-like falloff.
func diskColorAt(x, z float64, rho float64, num int) [3]float32 {
	angle := math.Atan2(z, x)
	band := 0.5 + 0.5*math.Sin(float64(num)*angle+rho*1e-9)
	falloff := 1.0 / (1.0 + rho*1e-11)
	warm := [3]float64{1.0, 0.55, 0.2}
	cool := [3]float64{0.9, 0.75, 1.0}
	var out [3]float32
	for i := 0; i < 3; i++ {
		c := (warm[i]*band + cool[i]*(1-band)) * falloff
		if c > 1 {
			c = 1
		}
		out[i] = float32(c)
	}
	return out
}

// diskCrossing tests whether the segment prev->cur crossed the equatorial
// plane (or stayed within thk/2 of it), and if so whether the crossing
// point's cylindrical radius rho falls inside [r1, r2].
func diskCrossing(prevY, curY float64, prevX, prevZ, curX, curZ float64, d Disk) (hit bool, rho, x, z float64) {
	halfThk := d.Thk / 2
	crossed := (prevY > 0) != (curY > 0)
	within := math.Abs(prevY) <= halfThk && math.Abs(curY) <= halfThk
	if !crossed && !within {
		return false, 0, 0, 0
	}
	// Linear interpolation of the crossing point along the segment.
	t := 0.5
	if curY != prevY {
		t = (0 - prevY) / (curY - prevY)
		if t < 0 || t > 1 {
			t = 0.5
		}
	}
	x = prevX + t*(curX-prevX)
	z = prevZ + t*(curZ-prevZ)
	rho = math.Sqrt(x*x + z*z)
	return rho >= d.R1 && rho <= d.R2, rho, x, z
}

// segmentSphereHit tests whether the segment prev->cur passes within
// radius of center.
func segmentSphereHit(prev, cur, center reMath.Vec3f64, radius float64) bool {
	d := cur.Sub(prev)
	f := prev.Sub(center)
	a := d.Dot(d)
	if a == 0 {
		return f.Dot(f) <= radius*radius
	}
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return false
	}
	disc = math.Sqrt(disc)
	t1 := (-b - disc) / (2 * a)
	t2 := (-b + disc) / (2 * a)
	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1) || (t1 < 0 && t2 > 1)
}

// Trace steps ray through scene until one of its termination conditions
// fires, applying the horizon > occluder > disk > escape tie-break when
// multiple conditions fire within the same step.
func Trace(s *Scene, ray *Ray, dlam float64, stepBudget int) Result {
	escapeR := EscapeRadius(s.BlackHole.Rs)

	for step := 0; step < stepBudget; step++ {
		prevX, prevY, prevZ := ray.X, ray.Y, ray.Z

		ray.Step(dlam)

		if ray.Captured || ray.R <= s.BlackHole.Rs {
			return Result{Outcome: OutcomeHorizon, Steps: step + 1, FinalR: ray.R}
		}

		prev := reMath.Vec3f64{X: prevX, Y: prevY, Z: prevZ}
		cur := reMath.Vec3f64{X: ray.X, Y: ray.Y, Z: ray.Z}

		for i, obj := range s.Objects {
			center := reMath.Vec3f64{X: float64(obj.Position.X), Y: float64(obj.Position.Y), Z: float64(obj.Position.Z)}
			if segmentSphereHit(prev, cur, center, obj.Radius) {
				return Result{Outcome: OutcomeOccluder, ObjectIdx: i, Steps: step + 1, FinalR: ray.R}
			}
		}

		if hit, rho, x, z := diskCrossing(prevY, ray.Y, prevX, prevZ, ray.X, ray.Z, s.Disk); hit {
			return Result{
				Outcome:   OutcomeDisk,
				DiskColor: diskColorAt(x, z, rho, s.Disk.Num),
				Steps:     step + 1,
				FinalR:    ray.R,
			}
		}

		if ray.R > escapeR {
			return Result{Outcome: OutcomeEscaped, Steps: step + 1, FinalR: ray.R}
		}
	}

	return Result{Outcome: OutcomeEscaped, Steps: stepBudget, FinalR: ray.R}
}

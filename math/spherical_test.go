package math

import (
	"math"
	"testing"
)

func TestCartesianSphericalRoundTrip(t *testing.T) {
	cases := []struct{ x, y, z float64 }{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{3, 4, 5},
		{-2, 7, -1},
	}
	for _, c := range cases {
		r, theta, phi := CartesianToSpherical(c.x, c.y, c.z)
		x, y, z := SphericalToCartesian(r, theta, phi)
		if math.Abs(x-c.x) > 1e-9 || math.Abs(y-c.y) > 1e-9 || math.Abs(z-c.z) > 1e-9 {
			t.Errorf("round trip for (%g,%g,%g): got (%g,%g,%g)", c.x, c.y, c.z, x, y, z)
		}
	}
}

func TestCartesianToSphericalAxes(t *testing.T) {
	r, theta, phi := CartesianToSpherical(0, 0, 2)
	if math.Abs(r-2) > 1e-9 {
		t.Errorf("r = %g, want 2", r)
	}
	if math.Abs(theta) > 1e-9 {
		t.Errorf("theta = %g, want 0 (aligned with +Z)", theta)
	}
	_ = phi // undefined at the pole, not checked
}

package physics

import (
	"testing"

	reMath "github.com/Nate534/black-hole/math"
)

func TestNewBlackHoleRejectsNonPositiveMass(t *testing.T) {
	for _, m := range []float64{0, -1, -1e30} {
		if _, err := NewBlackHole(m, reMath.Vec3Zero); err == nil {
			t.Errorf("NewBlackHole(%g) should have failed", m)
		}
	}
}

func TestNewBlackHoleCachesRs(t *testing.T) {
	bh, err := NewBlackHole(8.54e36, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	if bh.Rs != SchwarzschildRadius(8.54e36) {
		t.Errorf("cached Rs = %g, want %g", bh.Rs, SchwarzschildRadius(8.54e36))
	}
	if bh.PhotonSphere() != 1.5*bh.Rs {
		t.Errorf("PhotonSphere() = %g, want %g", bh.PhotonSphere(), 1.5*bh.Rs)
	}
}

func TestDiskValidateRejectsBadRadii(t *testing.T) {
	rs := 1e10
	cases := []Disk{
		{R1: 0.5 * rs, R2: 5 * rs, Num: 2, Thk: 1e9}, // r1 < rs
		{R1: 5 * rs, R2: 4 * rs, Num: 2, Thk: 1e9},   // r2 < r1
		{R1: 2 * rs, R2: 5 * rs, Num: 0, Thk: 1e9},   // num < 1
		{R1: 2 * rs, R2: 5 * rs, Num: 2, Thk: -1},    // negative thickness
	}
	for _, d := range cases {
		if err := d.Validate(rs); err == nil {
			t.Errorf("Disk%+v should have failed validation against rs=%g", d, rs)
		}
	}
}

func TestDefaultDiskIsValid(t *testing.T) {
	rs := 1.2679e10
	d := DefaultDisk(rs)
	if err := d.Validate(rs); err != nil {
		t.Errorf("DefaultDisk(%g) failed validation: %v", rs, err)
	}
}

func TestObjectRsZeroWhenMassless(t *testing.T) {
	o := Object{Mass: 0}
	if o.Rs() != 0 {
		t.Errorf("massless Object.Rs() = %g, want 0", o.Rs())
	}
}

func TestEscapeRadiusFloor(t *testing.T) {
	// Small rs: escape radius should floor at DefaultEscapeRadius.
	if got := EscapeRadius(1); got != DefaultEscapeRadius {
		t.Errorf("EscapeRadius(1) = %g, want floor %g", got, DefaultEscapeRadius)
	}
	// Large rs: escape radius should scale as 1e4*rs.
	rs := 1e12
	if got := EscapeRadius(rs); got != 1e4*rs {
		t.Errorf("EscapeRadius(%g) = %g, want %g", rs, got, 1e4*rs)
	}
}

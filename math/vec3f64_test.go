package math

import "testing"

func TestVec3f64Operations(t *testing.T) {
	v1 := Vec3f64{X: 1, Y: 2, Z: 3}
	v2 := Vec3f64{X: 4, Y: 5, Z: 6}

	if got, want := v1.Add(v2), (Vec3f64{X: 5, Y: 7, Z: 9}); got != want {
		t.Errorf("Add: expected %v, got %v", want, got)
	}
	if got, want := v2.Sub(v1), (Vec3f64{X: 3, Y: 3, Z: 3}); got != want {
		t.Errorf("Sub: expected %v, got %v", want, got)
	}
	if got, want := v1.Scale(2), (Vec3f64{X: 2, Y: 4, Z: 6}); got != want {
		t.Errorf("Scale: expected %v, got %v", want, got)
	}
	if got, want := v1.Dot(v2), 32.0; got != want {
		t.Errorf("Dot: expected %v, got %v", want, got)
	}
}

func TestVec3f64ToVec3(t *testing.T) {
	v := Vec3f64{X: 1.5, Y: -2.5, Z: 3.0}
	got := v.ToVec3()
	want := Vec3{X: 1.5, Y: -2.5, Z: 3.0}
	if got != want {
		t.Errorf("ToVec3: expected %v, got %v", want, got)
	}
}

package opengl

import "testing"

func TestNextCapacityFitsWithinCurrent(t *testing.T) {
	got := nextCapacity(100, 256)
	if got != 256 {
		t.Errorf("nextCapacity(100, 256) = %d, want unchanged capacity 256", got)
	}
}

func TestNextCapacityGrowsByOneAndAHalf(t *testing.T) {
	cases := []struct{ needed, capacity, want int }{
		{needed: 200, capacity: 100, want: 200},
		{needed: 400, capacity: 100, want: 400}, // needed exceeds 1.5x
		{needed: 151, capacity: 100, want: 151}, // needed just above ceil(1.5*100)
		{needed: 0, capacity: 0, want: 0},
	}
	for _, c := range cases {
		got := nextCapacity(c.needed, c.capacity)
		if got != c.want {
			t.Errorf("nextCapacity(%d, %d) = %d, want %d", c.needed, c.capacity, got, c.want)
		}
	}
}

func TestNextCapacityFromZero(t *testing.T) {
	got := nextCapacity(64, 0)
	if got != 64 {
		t.Errorf("nextCapacity(64, 0) = %d, want 64", got)
	}
}

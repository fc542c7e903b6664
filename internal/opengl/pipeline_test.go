package opengl

import (
	"testing"

	"github.com/Nate534/black-hole/core"
	reMath "github.com/Nate534/black-hole/math"
)

func TestCeilDivWorkgroupCounts(t *testing.T) {
	// Static target 200x150 -> 13x10 groups; dynamic 100x75 -> 7x5 groups.
	cases := []struct{ a, b, want int }{
		{200, 16, 13},
		{150, 16, 10},
		{100, 16, 7},
		{75, 16, 5},
		{16, 16, 1},
		{1, 16, 1},
	}
	for _, c := range cases {
		got := ceilDiv(c.a, c.b)
		if got != c.want {
			t.Errorf("ceilDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestEncodeGridVerticesByteLength(t *testing.T) {
	// Each vertex encodes to 7 float32 fields (pos.xyz + color.rgba) = 28 bytes.
	vertices := []core.Vertex{
		{Position: reMath.Vec3{X: 1, Y: 2, Z: 3}, Color: core.Color{R: 1, G: 1, B: 1, A: 1}},
		{Position: reMath.Vec3{X: 4, Y: 5, Z: 6}, Color: core.Color{R: 0, G: 0, B: 0, A: 1}},
		{Position: reMath.Vec3{X: 7, Y: 8, Z: 9}, Color: core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}},
	}
	got := len(encodeGridVertices(vertices))
	if got != len(vertices)*28 {
		t.Errorf("encodeGridVertices byte length = %d, want %d", got, len(vertices)*28)
	}
}

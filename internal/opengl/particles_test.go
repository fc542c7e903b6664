package opengl

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat32SliceToBytesRoundTrips(t *testing.T) {
	v := []float32{1, -2.5, 3.25, 0}
	buf := float32SliceToBytes(v)
	if len(buf) != len(v)*4 {
		t.Fatalf("byte length = %d, want %d", len(buf), len(v)*4)
	}
	for i, want := range v {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		if got != want {
			t.Errorf("element %d = %g, want %g", i, got, want)
		}
	}
}

func TestFloat32SliceToBytesEmpty(t *testing.T) {
	if got := float32SliceToBytes(nil); got != nil {
		t.Errorf("float32SliceToBytes(nil) = %v, want nil", got)
	}
}

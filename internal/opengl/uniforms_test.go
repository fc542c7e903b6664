package opengl

import (
	"encoding/binary"
	"math"
	"testing"

	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
)

func TestCameraBlockByteLayout(t *testing.T) {
	b := CameraBlock{
		Position:   reMath.Vec3{X: 1, Y: 2, Z: 3},
		Right:      reMath.Vec3{X: 4, Y: 5, Z: 6},
		Up:         reMath.Vec3{X: 7, Y: 8, Z: 9},
		Forward:    reMath.Vec3{X: 10, Y: 11, Z: 12},
		TanHalfFOV: 0.5,
		Aspect:     1.777,
		Moving:     1,
	}
	buf := b.Bytes()
	if len(buf) != CameraBlockSize {
		t.Fatalf("CameraBlock.Bytes() length = %d, want %d", len(buf), CameraBlockSize)
	}

	checkFloat := func(offset int, want float32, label string) {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
		if got != want {
			t.Errorf("%s at byte %d = %g, want %g", label, offset, got, want)
		}
	}
	checkFloat(0, 1, "Position.X")
	checkFloat(4, 2, "Position.Y")
	checkFloat(8, 3, "Position.Z")
	checkFloat(16, 4, "Right.X")
	checkFloat(32, 7, "Up.X")
	checkFloat(48, 10, "Forward.X")
	checkFloat(64, 0.5, "TanHalfFOV")
	checkFloat(68, 1.777, "Aspect")
	checkFloat(72, 1, "Moving")

	// Padding between each vec3 and the start of the next field must be zero.
	for _, pad := range [][2]int{{12, 16}, {28, 32}, {44, 48}, {60, 64}} {
		for i := pad[0]; i < pad[1]; i++ {
			if buf[i] != 0 {
				t.Errorf("expected zero padding at byte %d, got %d", i, buf[i])
			}
		}
	}
}

func TestDiskBlockByteLayout(t *testing.T) {
	// Disk (r1=2.789e10, r2=6.593e10, num=2, thk=1e9) as a little-endian
	// float32 sequence.
	rs := 2.789e10 / 2.2
	d := physics.Disk{R1: 2.789e10, R2: 6.593e10, Num: 2, Thk: 1e9}
	if err := d.Validate(rs); err != nil {
		t.Fatalf("disk invariants violated by test fixture: %v", err)
	}

	block := DiskBlockFromDisk(d)
	buf := block.Bytes()
	if len(buf) != DiskBlockSize {
		t.Fatalf("DiskBlock.Bytes() length = %d, want %d", len(buf), DiskBlockSize)
	}

	want := []float32{2.789e10, 6.593e10, 2, 1e9}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		if got != w {
			t.Errorf("DiskBlock byte field %d = %g, want %g", i, got, w)
		}
	}
}

func TestObjectsBlockLayoutAndTruncation(t *testing.T) {
	objects := make([]physics.Object, physics.MaxObjects+5)
	for i := range objects {
		objects[i] = physics.Object{
			Position: reMath.Vec3{X: float32(i), Y: 0, Z: 0},
			Radius:   1e9,
			Color:    [3]float32{1, 0, 0},
			Mass:     1e20,
		}
	}

	block := ObjectsBlockFromObjects(objects)
	if block.Count != physics.MaxObjects {
		t.Errorf("ObjectsBlock.Count = %d, want %d (truncated to MaxObjects)", block.Count, physics.MaxObjects)
	}

	buf := block.Bytes()
	if len(buf) != ObjectsBlockSize {
		t.Fatalf("ObjectsBlock.Bytes() length = %d, want %d", len(buf), ObjectsBlockSize)
	}

	gotCount := binary.LittleEndian.Uint32(buf[0:4])
	if gotCount != physics.MaxObjects {
		t.Errorf("encoded count = %d, want %d", gotCount, physics.MaxObjects)
	}

	// First posRadius entry (object 0) starts right after the 16-byte header.
	firstX := math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20]))
	if firstX != 0 {
		t.Errorf("first object's posRadius.x = %g, want 0", firstX)
	}
}

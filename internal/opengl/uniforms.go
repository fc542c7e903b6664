package opengl

import (
	"encoding/binary"
	"math"

	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
)

// CameraBlockSize is the fixed byte size of the binding-1 camera uniform
// block.
const CameraBlockSize = 128

// DiskBlockSize is the fixed byte size of the binding-2 disk uniform block.
const DiskBlockSize = 16

// objectsHeaderSize is the count field plus its padding to a 16-byte
// boundary (int count + 12 bytes pad).
const objectsHeaderSize = 16

// ObjectsBlockSize is the fixed byte size of the binding-3 objects uniform
// block: the header plus three MAX_OBJECTS-length vec4 arrays
// (posRadius, color, mass-padded-to-vec4).
const ObjectsBlockSize = objectsHeaderSize + physics.MaxObjects*16*3

// CameraBlock is the Go-side record for uniform binding 1. Ad-hoc array
// packing (the original's dictionary-driven set_uniform) is replaced by
// this declared record with a single Bytes() encoder.
type CameraBlock struct {
	Position   reMath.Vec3
	Right      reMath.Vec3
	Up         reMath.Vec3
	Forward    reMath.Vec3
	TanHalfFOV float32
	Aspect     float32
	Moving     float32
}

// Bytes serializes the block to its exact 128-byte std140-like layout.
func (b CameraBlock) Bytes() []byte {
	buf := make([]byte, CameraBlockSize)
	putVec3Padded(buf[0:16], b.Position)
	putVec3Padded(buf[16:32], b.Right)
	putVec3Padded(buf[32:48], b.Up)
	putVec3Padded(buf[48:64], b.Forward)
	putFloat32(buf[64:68], b.TanHalfFOV)
	putFloat32(buf[68:72], b.Aspect)
	putFloat32(buf[72:76], b.Moving)
	// buf[76:128] stays zero padding.
	return buf
}

// DiskBlock is the Go-side record for uniform binding 2: (r1, r2, num, thk)
// as four floats.
type DiskBlock struct {
	R1, R2 float32
	Num    float32
	Thk    float32
}

// DiskBlockFromDisk converts a physics.Disk (float64, integer arm count)
// into the float32 uniform record the shader reads.
func DiskBlockFromDisk(d physics.Disk) DiskBlock {
	return DiskBlock{
		R1:  float32(d.R1),
		R2:  float32(d.R2),
		Num: float32(d.Num),
		Thk: float32(d.Thk),
	}
}

// Bytes serializes the block to its exact 16-byte layout.
func (b DiskBlock) Bytes() []byte {
	buf := make([]byte, DiskBlockSize)
	putFloat32(buf[0:4], b.R1)
	putFloat32(buf[4:8], b.R2)
	putFloat32(buf[8:12], b.Num)
	putFloat32(buf[12:16], b.Thk)
	return buf
}

// ObjectsBlock is the Go-side record for uniform binding 3: a count
// followed by three MAX_OBJECTS-length parallel arrays.
type ObjectsBlock struct {
	Count     int32
	PosRadius [physics.MaxObjects][4]float32 // x, y, z, radius
	Color     [physics.MaxObjects][4]float32 // r, g, b, a(=1)
	Mass      [physics.MaxObjects]float32    // padded to vec4 per entry
}

// ObjectsBlockFromObjects packs up to MaxObjects physics.Object values into
// the fixed-size uniform record, silently truncating any excess (the scene
// builder is responsible for enforcing MaxObjects; this is the wire
// encoder, not the validator).
func ObjectsBlockFromObjects(objects []physics.Object) ObjectsBlock {
	var b ObjectsBlock
	n := len(objects)
	if n > physics.MaxObjects {
		n = physics.MaxObjects
	}
	b.Count = int32(n)
	for i := 0; i < n; i++ {
		o := objects[i]
		b.PosRadius[i] = [4]float32{o.Position.X, o.Position.Y, o.Position.Z, float32(o.Radius)}
		b.Color[i] = [4]float32{o.Color[0], o.Color[1], o.Color[2], 1}
		b.Mass[i] = float32(o.Mass)
	}
	return b
}

// Bytes serializes the block to its exact layout: count + 12-byte pad,
// posRadius[MAX], color[MAX], mass[MAX] each padded to a vec4 slot.
func (b ObjectsBlock) Bytes() []byte {
	buf := make([]byte, ObjectsBlockSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(b.Count))
	// buf[4:16] stays zero padding.

	off := objectsHeaderSize
	for i := 0; i < physics.MaxObjects; i++ {
		putVec4(buf[off:off+16], b.PosRadius[i])
		off += 16
	}
	for i := 0; i < physics.MaxObjects; i++ {
		putVec4(buf[off:off+16], b.Color[i])
		off += 16
	}
	for i := 0; i < physics.MaxObjects; i++ {
		putFloat32(buf[off:off+4], b.Mass[i])
		off += 16 // each mass entry occupies a full padded vec4 slot
	}
	return buf
}

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func putVec3Padded(dst []byte, v reMath.Vec3) {
	putFloat32(dst[0:4], v.X)
	putFloat32(dst[4:8], v.Y)
	putFloat32(dst[8:12], v.Z)
	// dst[12:16] stays zero padding.
}

func putVec4(dst []byte, v [4]float32) {
	putFloat32(dst[0:4], v[0])
	putFloat32(dst[4:8], v[1])
	putFloat32(dst[8:12], v[2])
	putFloat32(dst[12:16], v[3])
}

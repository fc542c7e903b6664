package scene

import (
	"github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
)

// Scene is the flat aggregate the renderer walks every frame: one primary
// black hole, zero-or-more ancillary occluders, and the accretion disk.
// There is no node graph, mesh list, or light list — this scene has no
// meshes or lights to manage, only the three physics values a geodesic
// ray-caster needs.
type Scene struct {
	BlackHole *physics.BlackHole
	Objects   []physics.Object
	Disk      physics.Disk
}

// PhysicsScene narrows Scene to the read-only view physics.Trace needs.
func (s *Scene) PhysicsScene() *physics.Scene {
	return &physics.Scene{
		BlackHole: s.BlackHole,
		Disk:      s.Disk,
		Objects:   s.Objects,
	}
}

// SagAMass is the default primary black hole's mass, matching
// original_source/python/scene.py's default BlackHole.
const SagAMass = 8.54e36 // kg

// DefaultScene builds the reference scene used by cmd/blackhole: SagA at the
// origin, its default disk, and one ancillary occluder, matching
// original_source/python/scene.py's default_objects().
func DefaultScene() (*Scene, error) {
	bh, err := physics.NewBlackHole(SagAMass, math.Vec3Zero)
	if err != nil {
		return nil, err
	}

	disk := physics.DefaultDisk(bh.Rs)
	if err := disk.Validate(bh.Rs); err != nil {
		return nil, err
	}

	objects := []physics.Object{
		{
			Position: math.Vec3{X: 4e11, Y: 0, Z: 4e11},
			Radius:   4e10,
			Color:    [3]float32{0.9, 0.4, 0.2},
			Mass:     1.98892e30,
		},
	}

	return &Scene{
		BlackHole: bh,
		Objects:   objects,
		Disk:      disk,
	}, nil
}

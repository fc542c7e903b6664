package scene

import (
	"testing"

	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
)

func TestGridSymmetricAroundCenteredBlackHole(t *testing.T) {
	bh, err := physics.NewBlackHole(SagAMass, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	ps := &physics.Scene{BlackHole: bh}

	grid := NewCurvatureGrid(GridDivisions, GridSpacing)
	vertices := grid.BuildVertices(ps)
	n := grid.Divisions + 1

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			opp := vertexIndex(grid.Divisions, n-1-row, n-1-col)
			here := vertexIndex(grid.Divisions, row, col)
			yHere := vertices[here].Position.Y
			yOpp := vertices[opp].Position.Y
			if yHere != yOpp {
				t.Fatalf("grid not symmetric at (row=%d,col=%d): y=%g vs reflected y=%g", row, col, yHere, yOpp)
			}
		}
	}
}

func TestGridDipsMoreNearMassiveObject(t *testing.T) {
	bh, err := physics.NewBlackHole(SagAMass, reMath.Vec3Zero)
	if err != nil {
		t.Fatalf("NewBlackHole: %v", err)
	}
	objects := []physics.Object{
		{
			Position: reMath.Vec3{X: 4e11, Y: 0, Z: 4e11},
			Radius:   4e10,
			Color:    [3]float32{0.9, 0.4, 0.2},
			Mass:     1.98892e30,
		},
	}
	ps := &physics.Scene{BlackHole: bh, Objects: objects}

	grid := NewCurvatureGrid(GridDivisions, GridSpacing)
	vertices := grid.BuildVertices(ps)
	n := grid.Divisions + 1

	nearestIdx, nearestDist := -1, float32(-1)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			idx := vertexIndex(grid.Divisions, row, col)
			pos := vertices[idx].Position
			dx := pos.X - objects[0].Position.X
			dz := pos.Z - objects[0].Position.Z
			dist := dx*dx + dz*dz
			if nearestIdx == -1 || dist < nearestDist {
				nearestIdx, nearestDist = int(idx), dist
			}
		}
	}

	nearObjectY := vertices[nearestIdx].Position.Y
	corners := []uint32{
		vertexIndex(grid.Divisions, 0, 0),
		vertexIndex(grid.Divisions, 0, grid.Divisions),
		vertexIndex(grid.Divisions, grid.Divisions, 0),
		vertexIndex(grid.Divisions, grid.Divisions, grid.Divisions),
	}
	for _, c := range corners {
		if int(c) == nearestIdx {
			continue
		}
		if nearObjectY >= vertices[c].Position.Y {
			t.Errorf("vertex nearest the object (y=%g) should dip below a corner vertex (y=%g)", nearObjectY, vertices[c].Position.Y)
		}
	}
}

package scene

import (
	stdmath "math"

	"github.com/Nate534/black-hole/core"
	reMath "github.com/Nate534/black-hole/math"
	"github.com/Nate534/black-hole/physics"
)

// GridDivisions is the default cell count per axis.
const GridDivisions = 25

// GridSpacing is the world-space distance between adjacent grid lines,
// matching original_source/python/renderer.py's generate_grid.
const GridSpacing = 1e10 // meters

// gridBaseline is subtracted from every vertex's displacement so the flat
// (no-mass) grid sits at y = -gridBaseline rather than spanning above and
// below zero, matching original_source/python/renderer.py's "- 3e10" term.
const gridBaseline = 3e10

// CurvatureGrid is the embedding-diagram mesh rebuilt every frame: a flat
// (N+1)² plane whose vertices are displaced along Y by the combined
// gravitational "dip" of every massive object in the scene. The topology
// (EdgeIndices) is built once and cached, while vertex positions are
// rebuilt each frame.
type CurvatureGrid struct {
	Divisions int
	Spacing   float32

	// EdgeIndices is the static line-list index buffer: 4*N^2 indices.
	// Computed once in NewCurvatureGrid and never mutated.
	EdgeIndices []uint32

	gridColor core.Color
}

// NewCurvatureGrid builds the static topology for a divisions×divisions
// cell grid (so (divisions+1)^2 vertices) at the given spacing.
func NewCurvatureGrid(divisions int, spacing float32) *CurvatureGrid {
	if divisions < 1 {
		divisions = 1
	}
	g := &CurvatureGrid{
		Divisions: divisions,
		Spacing:   spacing,
		gridColor: core.Color{R: 0.4, G: 0.55, B: 0.9, A: 0.35},
	}
	g.EdgeIndices = buildGridEdges(divisions)
	return g
}

// vertexIndex maps a (row, col) grid coordinate to its flat vertex index in
// a (divisions+1)x(divisions+1) grid.
func vertexIndex(divisions, row, col int) uint32 {
	return uint32(row*(divisions+1) + col)
}

// buildGridEdges builds the line-list topology: one horizontal and one
// vertical segment per cell (the cell's edges leaving its (row, col)
// corner), giving 4*N^2 indices on an N-division grid. The segments along
// the last row and the last column of vertices are not included.
func buildGridEdges(divisions int) []uint32 {
	indices := make([]uint32, 0, 4*divisions*divisions)
	for row := 0; row < divisions; row++ {
		for col := 0; col < divisions; col++ {
			a := vertexIndex(divisions, row, col)
			indices = append(indices, a, vertexIndex(divisions, row, col+1), a, vertexIndex(divisions, row+1, col))
		}
	}
	return indices
}

// objectContribution returns the embedding-diagram vertical displacement
// contributed by one massive body at horizontal (cylindrical) distance d
// from the sample point:
//
//	2*sqrt(rs*(d-rs))  if d > rs
//	2*rs               if d <= rs
func objectContribution(d, rs float64) float64 {
	if rs <= 0 {
		return 0
	}
	if d > rs {
		return 2 * stdmath.Sqrt(rs*(d-rs))
	}
	return 2 * rs
}

// displacementAt sums every massive body's contribution (the primary black
// hole plus any ancillary object with nonzero mass) at world-space (x, z),
// then subtracts the baseline offset.
func displacementAt(x, z float64, s *physics.Scene) float64 {
	total := 0.0

	if s.BlackHole != nil {
		dx := x - float64(s.BlackHole.Position.X)
		dz := z - float64(s.BlackHole.Position.Z)
		d := stdmath.Sqrt(dx*dx + dz*dz)
		total += objectContribution(d, s.BlackHole.Rs)
	}

	for _, obj := range s.Objects {
		rs := obj.Rs()
		if rs <= 0 {
			continue
		}
		dx := x - float64(obj.Position.X)
		dz := z - float64(obj.Position.Z)
		d := stdmath.Sqrt(dx*dx + dz*dz)
		total += objectContribution(d, rs)
	}

	return total - gridBaseline
}

// BuildVertices rebuilds the (N+1)^2 vertex positions for the current scene
// state. Called once per frame; the returned slice's order matches
// g.EdgeIndices.
func (g *CurvatureGrid) BuildVertices(s *physics.Scene) []core.Vertex {
	n := g.Divisions + 1
	vertices := make([]core.Vertex, n*n)

	for row := 0; row < n; row++ {
		z := float32((float64(row) - float64(g.Divisions)/2) * float64(g.Spacing))
		for col := 0; col < n; col++ {
			x := float32((float64(col) - float64(g.Divisions)/2) * float64(g.Spacing))
			y := float32(displacementAt(float64(x), float64(z), s))
			vertices[vertexIndex(g.Divisions, row, col)] = core.Vertex{
				Position: reMath.Vec3{X: x, Y: y, Z: z},
				Color:    g.gridColor,
			}
		}
	}

	return vertices
}

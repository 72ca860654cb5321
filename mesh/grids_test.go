package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxGridCounts(t *testing.T) {
	g := NewBoxGrid(4, 3, 2, 2, 1.5, 1)
	assert.Equal(t, 24, g.NCells)
	assert.Equal(t, 5*4*3, g.NVertices)
	// Interior faces: (nx-1)*ny*nz + nx*(ny-1)*nz + nx*ny*(nz-1)
	assert.Equal(t, 3*3*2+4*2*2+4*3*1, g.NIFaces)
	// Boundary faces: two of each box side
	assert.Equal(t, 2*(3*2+4*2+4*3), g.NBFaces)
	for _, side := range []string{"xmin", "xmax", "ymin", "ymax", "zmin", "zmax"} {
		assert.NotEmpty(t, g.Groups[side])
	}
	assert.Equal(t, 3*2, len(g.Groups["xmin"]))
}

func TestBoxGridGeometryClosure(t *testing.T) {
	g := NewBoxGrid(3, 3, 3, 1, 1, 1)
	// Total volume
	var vol float64
	for c := 0; c < g.NCells; c++ {
		vol += g.CellVol[c]
	}
	assert.True(t, near(vol, 1.0))

	// Surface closure per cell: sum of oriented face areas is zero
	closure := make([][3]float64, g.NCells)
	for f := 0; f < g.NIFaces; f++ {
		i, j := g.IFaceCells[f][0], g.IFaceCells[f][1]
		for d := 0; d < 3; d++ {
			closure[i][d] += g.IFaceSurf[f] * g.IFaceNormal[f][d]
			closure[j][d] -= g.IFaceSurf[f] * g.IFaceNormal[f][d]
		}
	}
	for f := 0; f < g.NBFaces; f++ {
		c := g.BFaceCells[f]
		for d := 0; d < 3; d++ {
			closure[c][d] += g.BFaceSurf[f] * g.BFaceNormal[f][d]
		}
	}
	for c := 0; c < g.NCells; c++ {
		for d := 0; d < 3; d++ {
			assert.InDelta(t, 0.0, closure[c][d], 1.e-12)
		}
	}
}

func TestBoxGridBoundaryOrientation(t *testing.T) {
	g := NewBoxGrid(2, 2, 2, 1, 1, 1)
	// Boundary normals point outward: positive dot with center-to-face
	for f := 0; f < g.NBFaces; f++ {
		c := g.BFaceCells[f]
		var dot float64
		for d := 0; d < 3; d++ {
			dot += (g.BFaceCOG[f][d] - g.CellCen[c][d]) * g.BFaceNormal[f][d]
		}
		assert.True(t, dot > 0)
		// Unit normals
		var n2 float64
		for d := 0; d < 3; d++ {
			n2 += g.BFaceNormal[f][d] * g.BFaceNormal[f][d]
		}
		assert.True(t, near(n2, 1.0))
		// Wall distance is half the cell size in the normal direction
		assert.True(t, g.BDist[f] > 0)
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) <= 1.e-08*math.Max(math.Abs(b), 1.0) {
		l = true
	}
	return
}

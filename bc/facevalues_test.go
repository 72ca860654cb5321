package bc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
)

// faceValueTestState sets up a linear field with an exact Dirichlet
// closure and a nonzero I' offset, so the reconstruction increment at
// every boundary face is 0.2 and the largest neighbor jump is 0.5.
func faceValueTestState() (*State, *mesh.BoxGrid, *field.Field) {
	g := mesh.NewBoxGrid(4, 4, 4, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	tracer := reg.CreateSolved("tracer", 1, 1)
	reg.AllocateBCs(g.NBFaces)
	vals := tracer.Val()
	for c := 0; c < g.NCells; c++ {
		vals[c] = 2.0*g.CellCen[c][0] + 1.0
	}
	for f := 0; f < g.NBFaces; f++ {
		g.DiipB[f] = [3]float64{0.1, 0, 0}
		tracer.BC.Icodcl[f] = field.CodeDirichlet
		tracer.BC.A[f] = 2.0*g.BFaceCOG[f][0] + 1.0
	}
	s := NewState(g.Mesh, reg, &Options{
		Phys: PhysicalConstants{Ro0: 1.0, Viscl0: 1.e-3},
	}, 1)
	return s, g, tracer
}

func TestFaceValueLimiterBoundsIncrement(t *testing.T) {
	s, g, tracer := faceValueTestState()
	vals := tracer.Val()

	// Default limiter of 1.0: the increment is below the largest
	// neighbor jump, I' passes through unclipped
	assert.NoError(t, EnsureFaceValues(s, tracer))
	for f := 0; f < g.NBFaces; f++ {
		c := g.BFaceCells[f]
		assert.True(t, near(tracer.BC.ValIP[f], vals[c]+0.2))
		assert.True(t, near(tracer.BC.ValIPLim[f], vals[c]+0.2))
	}

	// A tight limiter clips the increment to cl * max neighbor jump
	tracer.EqParams.ClimGrB = 0.1
	tracer.BC.CacheValid = false
	assert.NoError(t, EnsureFaceValues(s, tracer))
	for f := 0; f < g.NBFaces; f++ {
		c := g.BFaceCells[f]
		assert.True(t, near(tracer.BC.ValIPLim[f], vals[c]+0.05))
		// The unlimited reconstruction stays untouched
		assert.True(t, near(tracer.BC.ValIP[f], vals[c]+0.2))
	}

	// Zero pins I' to the cell value
	tracer.EqParams.ClimGrB = 0
	tracer.BC.CacheValid = false
	assert.NoError(t, EnsureFaceValues(s, tracer))
	for f := 0; f < g.NBFaces; f++ {
		assert.True(t, near(tracer.BC.ValIPLim[f], vals[g.BFaceCells[f]]))
	}

	// Negative disables the limiter
	tracer.EqParams.ClimGrB = -1
	tracer.BC.CacheValid = false
	assert.NoError(t, EnsureFaceValues(s, tracer))
	for f := 0; f < g.NBFaces; f++ {
		assert.True(t, near(tracer.BC.ValIPLim[f], vals[g.BFaceCells[f]]+0.2))
	}
}

func TestFaceValueLimiterNegativeValues(t *testing.T) {
	s, g, tracer := faceValueTestState()
	vals := tracer.Val()
	for c := 0; c < g.NCells; c++ {
		vals[c] = 2.0*g.CellCen[c][0] - 3.0
	}
	for f := 0; f < g.NBFaces; f++ {
		tracer.BC.A[f] = 2.0*g.BFaceCOG[f][0] - 3.0
	}
	// Negative cell values keep their reconstruction increment too
	assert.NoError(t, EnsureFaceValues(s, tracer))
	for f := 0; f < g.NBFaces; f++ {
		c := g.BFaceCells[f]
		assert.True(t, near(tracer.BC.ValIPLim[f], vals[c]+0.2))
	}
}

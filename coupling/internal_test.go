package coupling

import (
	"math"
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
)

func TestLocatePairsOpposingSides(t *testing.T) {
	g := mesh.NewBoxGrid(4, 4, 4, 1, 1, 1)
	ic, err := NewInternalCoupling(1, g.Mesh, g.Groups["xmin"], g.Groups["xmax"], 100.0)
	assert.NoError(t, err)
	// Nearest-center pairing must match faces with identical y,z
	for i, fa := range ic.FacesA {
		fb := ic.FacesB[i]
		assert.True(t, near(g.BFaceCOG[fa][1], g.BFaceCOG[fb][1]))
		assert.True(t, near(g.BFaceCOG[fa][2], g.BFaceCOG[fb][2]))
	}
}

func TestExchangeRoundTrip(t *testing.T) {
	g := mesh.NewBoxGrid(2, 2, 2, 1, 1, 1)
	ic, err := NewInternalCoupling(1, g.Mesh, g.Groups["xmin"], g.Groups["xmax"], 50.0)
	assert.NoError(t, err)

	a := []float64{1, 2, 3, 4}
	b := []float64{10, 20, 30, 40}
	ic.boxAtoB.Post(a)
	gotA, err := ic.ExchangeByFaceID(false, b)
	assert.NoError(t, err)
	assert.Equal(t, a, gotA)
	gotB, err := ic.ExchangeByFaceID(true, a)
	assert.NoError(t, err)
	assert.Equal(t, b, gotB)
}

func TestMatrixContributionBalance(t *testing.T) {
	g := mesh.NewBoxGrid(2, 2, 2, 1, 1, 1)
	ic, err := NewInternalCoupling(1, g.Mesh, g.Groups["xmin"], g.Groups["xmax"], 50.0)
	assert.NoError(t, err)

	a := sparse.NewDOK(g.NCells, g.NCells)
	ic.MatrixContribution(a)
	for i := range ic.FacesA {
		ca := g.BFaceCells[ic.FacesA[i]]
		cb := g.BFaceCells[ic.FacesB[i]]
		hs := 50.0 * g.BFaceSurf[ic.FacesA[i]]
		assert.True(t, near(a.At(ca, cb), -hs))
		assert.True(t, near(a.At(cb, ca), -hs))
		// Diagonal balances the off-diagonal: zero row sum
		assert.True(t, near(a.At(ca, ca)+a.At(ca, cb), 0.0))
	}
}

func TestApplyRobinOverridesCoupledFaces(t *testing.T) {
	g := mesh.NewBoxGrid(4, 2, 2, 2, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	reg.CreateSolved(field.Velocity, 3, 1)
	reg.CreateSolved(field.Pressure, 1, 1)
	temp := reg.CreateSolved("wall_temperature", 1, 1)
	reg.Create(field.Dt, 1, 1)
	reg.AllocateBCs(g.NBFaces)
	temp.EqParams.CouplingID = 7
	s := bc.NewState(g.Mesh, reg, &bc.Options{}, 1)

	vals := temp.Val()
	for c := 0; c < g.NCells; c++ {
		vals[c] = g.CellCen[c][0]
	}

	ic, err := NewInternalCoupling(7, g.Mesh, g.Groups["xmin"], g.Groups["xmax"], 25.0)
	assert.NoError(t, err)
	assert.NoError(t, ic.ApplyRobin(s, temp))

	for i, fa := range ic.FacesA {
		fb := ic.FacesB[i]
		assert.Equal(t, bc.FaceCoupled, s.FaceType[fa])
		assert.Equal(t, field.CodeDirichlet, temp.BC.Icodcl[fa])
		// Donor value is the far side's cell value (orthogonal grid)
		donor := vals[g.BFaceCells[fb]]
		assert.True(t, near(temp.BC.RC1[fa].Val, donor))
		assert.True(t, near(temp.BC.RC2[fa].Val, 25.0))
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) <= 1.e-08*math.Max(math.Abs(b), 1.0) {
		l = true
	}
	return
}

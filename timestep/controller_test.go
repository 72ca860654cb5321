package timestep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

func controllerTestCase(p Params) (*Controller, *mesh.BoxGrid, []float64, []float64) {
	g := mesh.NewBoxGrid(4, 4, 4, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	dt := reg.Create(field.Dt, 1, 1)
	for i := range dt.Val() {
		dt.Val()[i] = p.DtRef
	}
	ctx := utils.NewDispatchContext(2, g.NCells)
	c, err := NewController(g.Mesh, reg, ctx, p)
	if err != nil {
		panic(err)
	}
	// Uniform unit flow in x: mass flux is the signed x-projection of the
	// face area
	mfI := make([]float64, g.NIFaces)
	for f := 0; f < g.NIFaces; f++ {
		mfI[f] = g.IFaceNormal[f][0] * g.IFaceSurf[f]
	}
	mfB := make([]float64, g.NBFaces)
	for f := 0; f < g.NBFaces; f++ {
		mfB[f] = g.BFaceNormal[f][0] * g.BFaceSurf[f]
	}
	return c, g, mfI, mfB
}

func TestControllerConstant(t *testing.T) {
	p := DefaultParams()
	p.DtRef = 0.02
	c, g, mfI, mfB := controllerTestCase(p)
	assert.NoError(t, c.Advance(mfI, mfB))
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.Equal(t, 0.02, dt[i])
	}
}

func TestControllerUniformCourantBound(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeUniform
	p.DtRef = 1.0 // far above the Courant limit
	p.DtMin = 1.e-6
	p.DtMax = 10.0
	p.VarRdt = 0.1
	c, g, mfI, mfB := controllerTestCase(p)
	assert.NoError(t, c.Advance(mfI, mfB))

	// Cell size 0.25, unit velocity: the Courant limit is 0.25, reached
	// immediately since it is a decrease
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.True(t, near(dt[i], 0.25))
	}
}

func TestControllerVOFMassBound(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeUniform
	p.DtRef = 1.0
	p.DtMin = 1.e-6
	p.DtMax = 10.0
	p.VOF = true
	p.CourantMax = 1.0
	p.CFLMassMax = 0.5
	c, g, mfI, mfB := controllerTestCase(p)
	assert.NoError(t, c.Advance(mfI, mfB))

	// Under VOF the volume-fraction CFL replaces the Courant bound:
	// 0.5 * 0.25 instead of 0.25
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.True(t, near(dt[i], 0.125))
	}
}

func TestControllerProgressiveIncrease(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeUniform
	p.DtRef = 0.01 // far below the Courant limit of 0.25
	p.DtMin = 1.e-6
	p.DtMax = 10.0
	p.VarRdt = 0.1
	c, g, mfI, mfB := controllerTestCase(p)

	assert.NoError(t, c.Advance(mfI, mfB))
	dt := c.reg.MustGet(field.Dt).Val()
	assert.True(t, near(dt[0], 0.011))

	assert.NoError(t, c.Advance(mfI, mfB))
	assert.True(t, near(dt[0], 0.0121))

	// Uniform mode keeps one step for the whole domain
	for i := 1; i < g.NCells; i++ {
		assert.Equal(t, dt[0], dt[i])
	}
}

func TestControllerClipCounts(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeLocal
	p.DtRef = 0.01
	p.DtMin = 0.5 // above the Courant limit: every cell clips
	p.DtMax = 10.0
	c, g, mfI, mfB := controllerTestCase(p)
	assert.NoError(t, c.Advance(mfI, mfB))
	assert.Equal(t, int64(g.NCells), c.NClipMin)
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.Equal(t, 0.5, dt[i])
	}
}

func TestControllerNegotiation(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeUniform
	p.DtRef = 0.01
	p.DtMin = 1.e-6
	c, g, mfI, mfB := controllerTestCase(p)
	c.RegisterNegotiator(fixedNegotiator{0.005})
	assert.NoError(t, c.Advance(mfI, mfB))
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.Equal(t, 0.005, dt[i])
	}
}

func TestControllerSteady(t *testing.T) {
	p := DefaultParams()
	p.Mode = ModeSteady
	p.DtRef = 0.01
	p.RelaxV = 0.7
	c, g, mfI, mfB := controllerTestCase(p)
	assert.NoError(t, c.Advance(mfI, mfB))
	dt := c.reg.MustGet(field.Dt).Val()
	for i := 0; i < g.NCells; i++ {
		assert.True(t, dt[i] > 0)
		assert.False(t, math.IsInf(dt[i], 0))
		assert.False(t, math.IsNaN(dt[i]))
	}
}

type fixedNegotiator struct{ dt float64 }

func (n fixedNegotiator) NegotiateDt(proposed float64) (float64, error) {
	if n.dt < proposed {
		return n.dt, nil
	}
	return proposed, nil
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) <= 1.e-08*math.Max(math.Abs(b), 1.0) {
		l = true
	}
	return
}

package bc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
)

func wallTestState(turb TurbulenceModel, wallFn WallFunction) (*State, *mesh.BoxGrid) {
	g := mesh.NewBoxGrid(8, 8, 8, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	reg.CreateSolved(field.Velocity, 3, 1)
	reg.CreateSolved(field.Pressure, 1, 1)
	reg.CreateSolved(field.K, 1, 1)
	reg.CreateSolved(field.Epsilon, 1, 1)
	reg.Create(field.Dt, 1, 1)
	reg.AllocateBCs(g.NBFaces)
	opts := &Options{
		Turb:   turb,
		WallFn: wallFn,
		Phys:   PhysicalConstants{Ro0: 1.0, Viscl0: 1.e-5},
	}
	s := NewState(g.Mesh, reg, opts, 1)
	for _, f := range g.Groups["ymin"] {
		s.FaceType[f] = FaceSmoothWall
	}
	return s, g
}

func TestWallLawTwoScale(t *testing.T) {
	s, g := wallTestState(TurbKEpsilon, WallFnTwoScale)
	kvals := s.Reg.MustGet(field.K).Val()
	for i := range kvals {
		kvals[i] = 0.01
	}
	velIPB := make([]float64, g.NBFaces*3)
	for f := 0; f < g.NBFaces; f++ {
		velIPB[f*3] = 1.0
	}
	assert.NoError(t, s.WallLaw(velIPB))

	uk := Cmu025 * math.Sqrt(0.01)
	for _, f := range g.Groups["ymin"] {
		d := g.BDist[f]

		assert.True(t, s.Yplus[f] > YplusLim)
		assert.True(t, near(s.Yplus[f], uk*d/1.e-5))
		uplus := math.Log(s.Yplus[f])/Kappa + CstLog
		assert.True(t, near(s.UStar[f], 1.0/uplus))
		assert.Equal(t, 0, s.Isympa[f])

		// Wall velocity and exchange coefficient composed on the velocity
		vel := s.Reg.MustGet(field.Velocity)
		assert.Equal(t, field.CodeSmoothWall, vel.BC.Icodcl[f])
		assert.True(t, vel.BC.RC2[f*3].Defined)
		assert.True(t, near(vel.BC.RC2[f*3].Val, uk/uplus))

		// Equilibrium turbulence values
		kf := s.Reg.MustGet(field.K)
		ef := s.Reg.MustGet(field.Epsilon)
		assert.Equal(t, field.CodeDirichlet, kf.BC.Icodcl[f])
		assert.True(t, near(kf.BC.RC1[f].Val, uk*uk/math.Sqrt(Cmu)))
		assert.Equal(t, field.CodeDirichlet, ef.BC.Icodcl[f])
		assert.True(t, near(ef.BC.RC1[f].Val, uk*uk*uk/(Kappa*d)))
	}

	// Non-wall faces untouched
	for _, f := range g.Groups["ymax"] {
		assert.Equal(t, 0.0, s.UStar[f])
		assert.Equal(t, 1, s.Isympa[f])
	}
}

func TestWallLawViscousSublayer(t *testing.T) {
	s, g := wallTestState(TurbKEpsilon, WallFnLogLaw)
	// Nearly quiescent flow: friction stays in the viscous sublayer
	velIPB := make([]float64, g.NBFaces*3)
	for f := 0; f < g.NBFaces; f++ {
		velIPB[f*3] = 1.e-6
	}
	assert.NoError(t, s.WallLaw(velIPB))
	for _, f := range g.Groups["ymin"] {
		assert.True(t, s.Yplus[f] < YplusLim)
		vel := s.Reg.MustGet(field.Velocity)
		// Sublayer exchange is the molecular one
		assert.True(t, near(vel.BC.RC2[f*3].Val, 1.e-5/g.BDist[f]))
	}
}

func TestWallLawDeterministic(t *testing.T) {
	s, g := wallTestState(TurbKEpsilon, WallFnTwoScale)
	kvals := s.Reg.MustGet(field.K).Val()
	for i := range kvals {
		kvals[i] = 0.04
	}
	velIPB := make([]float64, g.NBFaces*3)
	for f := 0; f < g.NBFaces; f++ {
		velIPB[f*3] = 2.0
	}
	assert.NoError(t, s.WallLaw(velIPB))
	first := append([]float64(nil), s.UStar...)
	assert.NoError(t, s.WallLaw(velIPB))
	for f := range first {
		assert.Equal(t, first[f], s.UStar[f])
	}
}

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
)

func TestALEMeshVelocityCodes(t *testing.T) {
	g := mesh.NewBoxGrid(4, 4, 4, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	reg.CreateSolved(field.Velocity, 3, 1)
	reg.CreateSolved(field.Pressure, 1, 1)
	mv := reg.CreateSolved(field.MeshVelocity, 3, 1)
	dt := reg.Create(field.Dt, 1, 1)
	for i := range dt.Val() {
		dt.Val()[i] = 0.1
	}
	reg.AllocateBCs(g.NBFaces)
	s := bc.NewState(g.Mesh, reg, &bc.Options{
		ALE:  bc.ALELegacy,
		Phys: bc.PhysicalConstants{Ro0: 1.0, Viscl0: 1.e-5},
	}, 1)

	var (
		fixed   = g.Groups["ymin"]
		moving  = g.Groups["ymax"]
		sliding = g.Groups["zmin"]
		free    = g.Groups["zmax"]
	)
	disp := make([]float64, g.NBFaces*3)
	bfv := make([][]int, g.NBFaces)
	for _, f := range fixed {
		s.FaceType[f] = bc.FaceALEFixed
		bfv[f] = []int{0}
	}
	for i, f := range moving {
		s.FaceType[f] = bc.FaceALEImposedDisplacement
		disp[f*3+1] = 0.02
		bfv[f] = []int{i + 1}
	}
	for _, f := range sliding {
		s.FaceType[f] = bc.FaceALESliding
	}
	for _, f := range free {
		s.FaceType[f] = bc.FaceALEFreeSurface
	}
	hook := &ALE{ImposedDisplacement: disp, BFaceVertices: bfv}
	assert.NoError(t, hook.ConfigureBCs(s, bc.PhaseInit))

	for _, f := range fixed {
		assert.Equal(t, field.CodeDirichlet, mv.BC.Icodcl[f])
		for d := 0; d < 3; d++ {
			assert.True(t, near(mv.BC.RC1[f*3+d].Or(1), 0.0))
		}
	}
	// Imposed displacement becomes the velocity increment over dt
	for _, f := range moving {
		assert.Equal(t, field.CodeDirichlet, mv.BC.Icodcl[f])
		assert.True(t, near(mv.BC.RC1[f*3+1].Or(0), 0.2))
	}
	for _, f := range sliding {
		assert.Equal(t, field.CodeSymmetry, mv.BC.Icodcl[f])
	}
	for _, f := range free {
		assert.Equal(t, field.CodeNeumann, mv.BC.Icodcl[f])
		assert.True(t, near(mv.BC.RC3[f*3].Or(1), 0.0))
	}
	// Flow faces are left for the default closure
	for _, f := range g.Groups["xmin"] {
		assert.Equal(t, field.CodeUndefined, mv.BC.Icodcl[f])
	}

	// Vertices of fixed and displacement-driven faces are pinned,
	// sliding faces impose nothing on their vertices
	assert.True(t, hook.VtxImposed[0])
	for i := range moving {
		assert.True(t, hook.VtxImposed[i+1])
	}
	assert.False(t, hook.VtxImposed[len(moving)+1])
}

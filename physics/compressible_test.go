package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
)

func TestCompressibleOutletMachSplit(t *testing.T) {
	g := mesh.NewBoxGrid(4, 4, 4, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	vel := reg.CreateSolved(field.Velocity, 3, 1)
	press := reg.CreateSolved(field.Pressure, 1, 1)
	reg.AllocateBCs(g.NBFaces)
	s := bc.NewState(g.Mesh, reg, &bc.Options{
		Compress: true,
		Phys: bc.PhysicalConstants{
			Ro0: 1.0, Viscl0: 1.e-5, P0: 1.e5, Gamma: 1.4,
		},
	}, 1)

	// Two standard-outlet faces: one cell at rest, one past the speed of
	// sound (c^2 = gamma*P0/rho = 1.4e5)
	faces := g.Groups["xmax"]
	sub, sup := faces[0], faces[1]
	s.Isostd[sub] = 1
	s.Isostd[sup] = 1
	vel.Val()[g.BFaceCells[sup]*3] = 1000.0

	assert.NoError(t, Compressible{}.ConfigureBCs(s, bc.PhaseInit))

	// Subsonic: pressure pinned to the reference value
	assert.Equal(t, field.CodeDirichlet, press.BC.Icodcl[sub])
	assert.True(t, near(press.BC.RC1[sub].Or(0), 1.e5))
	// Supersonic: everything convected out
	assert.Equal(t, field.CodeNeumann, press.BC.Icodcl[sup])
	assert.True(t, press.BC.RC3[sup].Defined)
	assert.True(t, near(press.BC.RC3[sup].Or(1), 0.0))

	// Non-outlet faces stay untouched
	for _, f := range g.Groups["xmin"] {
		assert.Equal(t, field.CodeUndefined, press.BC.Icodcl[f])
	}
}

func TestCompressibleKeepsUserPressure(t *testing.T) {
	g := mesh.NewBoxGrid(2, 2, 2, 1, 1, 1)
	reg := field.NewRegistry(g.NCellsExt)
	reg.CreateSolved(field.Velocity, 3, 1)
	press := reg.CreateSolved(field.Pressure, 1, 1)
	reg.AllocateBCs(g.NBFaces)
	s := bc.NewState(g.Mesh, reg, &bc.Options{
		Compress: true,
		Phys: bc.PhysicalConstants{
			Ro0: 1.0, Viscl0: 1.e-5, P0: 1.e5, Gamma: 1.4,
		},
	}, 1)

	f := g.Groups["xmax"][0]
	s.Isostd[f] = 1
	press.BC.Icodcl[f] = field.CodeDirichlet
	press.BC.RC1[f] = field.Set(2.e5)

	assert.NoError(t, Compressible{}.ConfigureBCs(s, bc.PhaseInit))
	// An already-imposed outlet pressure is not overwritten
	assert.True(t, near(press.BC.RC1[f].Or(0), 2.e5))
}

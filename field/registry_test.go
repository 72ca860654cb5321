package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryOrderAndLookup(t *testing.T) {
	reg := NewRegistry(10)
	reg.CreateSolved(Velocity, 3, 2)
	reg.CreateSolved(Pressure, 1, 2)
	reg.Create(Dt, 1, 1)

	solved := reg.Solved()
	assert.Equal(t, 2, len(solved))
	assert.Equal(t, Velocity, solved[0].Name)
	assert.Equal(t, Pressure, solved[1].Name)
	assert.Equal(t, 3, len(reg.All()))

	_, err := reg.ByName("nope")
	assert.Error(t, err)
	assert.True(t, reg.Has(Dt))

	// IDs are creation indices
	assert.Equal(t, 1, reg.IDOf(Pressure))
	f, err := reg.ByID(1)
	assert.NoError(t, err)
	assert.Equal(t, Pressure, f.Name)

	assert.Panics(t, func() { reg.Create(Velocity, 3, 1) })
	assert.Panics(t, func() { reg.MustGet("nope") })
}

func TestFieldTimeLayers(t *testing.T) {
	reg := NewRegistry(4)
	f := reg.Create("rho", 1, 3)
	assert.Equal(t, 3, f.NTimeLayers())

	cur := f.Val()
	for i := range cur {
		cur[i] = float64(i)
	}
	f.Rotate()
	prev, err := f.ValPrev()
	assert.NoError(t, err)
	assert.Equal(t, 3.0, prev[3])
	// Current layer keeps its data after rotation
	assert.Equal(t, 3.0, f.Val()[3])

	single := reg.Create("mu", 1, 1)
	_, err = single.ValPrev()
	assert.Error(t, err)
}

func TestFieldKeys(t *testing.T) {
	reg := NewRegistry(4)
	f := reg.Create("scalar1", 1, 1)
	assert.Equal(t, -1, f.IntKey(KeyVarianceOf))
	f.SetIntKey(KeyVarianceOf, 2)
	assert.Equal(t, 2, f.IntKey(KeyVarianceOf))

	_, ok := f.RealKey("turbulent_schmidt")
	assert.False(t, ok)
	f.SetRealKey("turbulent_schmidt", 0.7)
	v, ok := f.RealKey("turbulent_schmidt")
	assert.True(t, ok)
	assert.Equal(t, 0.7, v)
}

func TestBCCoeffsReset(t *testing.T) {
	bcc := NewBCCoeffs(3, 2, false)
	bcc.SetFace(1, CodeDirichlet,
		[]Opt{Set(1), Set(2), Set(3)}, nil, nil)
	assert.Equal(t, CodeDirichlet, bcc.Icodcl[1])
	assert.True(t, bcc.RC1[3].Defined)
	assert.Equal(t, 1.0, bcc.RC1[3].Or(9))

	bcc.Reset()
	assert.Equal(t, CodeUndefined, bcc.Icodcl[1])
	assert.False(t, bcc.RC1[3].Defined)
	assert.Equal(t, 9.0, bcc.RC1[3].Or(9))
}

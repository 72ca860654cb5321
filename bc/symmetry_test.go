package bc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/field"
)

func TestProjector66(t *testing.T) {
	// Axis-aligned normal: the projection zeroes every component with a z
	// index and keeps the rest
	q := projector66([3]float64{0, 0, 1})
	in := [6]float64{1, 2, 3, 0.4, 0.5, 0.6} // xx yy zz xy yz xz
	var out [6]float64
	for a := 0; a < 6; a++ {
		for b := 0; b < 6; b++ {
			out[a] += q[a][b] * in[b]
		}
	}
	assert.True(t, near(out[0], 1.0))
	assert.True(t, near(out[1], 2.0))
	assert.True(t, near(out[2], 0.0))
	assert.True(t, near(out[3], 0.4))
	assert.True(t, near(out[4], 0.0))
	assert.True(t, near(out[5], 0.0))
}

func TestProjector66Idempotent(t *testing.T) {
	q := projector66([3]float64{0.6, 0.8, 0})
	in := [6]float64{1, -2, 0.5, 0.3, -0.1, 0.7}
	apply := func(v [6]float64) (out [6]float64) {
		for a := 0; a < 6; a++ {
			for b := 0; b < 6; b++ {
				out[a] += q[a][b] * v[b]
			}
		}
		return
	}
	once := apply(in)
	twice := apply(once)
	for a := 0; a < 6; a++ {
		assert.InDelta(t, once[a], twice[a], 1.e-12)
	}
}

func TestSetSymmetryTensor(t *testing.T) {
	var (
		bcc    = field.NewBCCoeffs(6, 1, true)
		normal = [3]float64{1, 0, 0}
	)
	SetSymmetryTensor(bcc, 0, 2.0, normal)
	// Gradient side reproduces the projected tensor: x components vanish
	vf := TensorFaceValue(bcc, 0, [6]float64{3, 4, 5, 0.1, 0.2, 0.3})
	assert.True(t, near(vf[0], 0.0)) // xx
	assert.True(t, near(vf[1], 4.0)) // yy
	assert.True(t, near(vf[2], 5.0)) // zz
	assert.True(t, near(vf[3], 0.0)) // xy
	assert.True(t, near(vf[4], 0.2)) // yz
	assert.True(t, near(vf[5], 0.0)) // xz
	// Divergence pair carries the same projection
	for i := 0; i < 36; i++ {
		assert.InDelta(t, bcc.B[i], bcc.Bd[i], 1.e-14)
	}
}

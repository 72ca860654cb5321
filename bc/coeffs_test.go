package bc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

func TestScalarCoeffs(t *testing.T) {
	bcc := field.NewBCCoeffs(1, 4, false)
	{
		// Strong Dirichlet: infinite external exchange
		SetDirichletScalar(bcc, 0, 2.0, 5.0, utils.RInfinite)
		assert.True(t, near(bcc.A[0], 2.0))
		assert.True(t, near(bcc.B[0], 0.0))
		assert.True(t, near(bcc.Af[0], -10.0))
		assert.True(t, near(bcc.Bf[0], 5.0))
		// Face value is the imposed value regardless of phi at I'
		assert.True(t, near(ScalarFaceValue(bcc, 0, 17.0), 2.0))
		// Flux is hint*(phi - pimp)
		assert.True(t, near(ScalarFaceFlux(bcc, 0, 4.0), 10.0))
	}
	{
		// Robin: equal internal and external resistances
		SetDirichletScalar(bcc, 1, 2.0, 5.0, 5.0)
		assert.True(t, near(bcc.A[1], 1.0))
		assert.True(t, near(bcc.B[1], 0.5))
		heq := 2.5
		assert.True(t, near(bcc.Af[1], -heq*2.0))
		assert.True(t, near(bcc.Bf[1], heq))
		// Flux follows the series exchange coefficient
		assert.True(t, near(ScalarFaceFlux(bcc, 1, 4.0), heq*(4.0-2.0)))
	}
	{
		SetNeumannScalar(bcc, 2, 4.0, 2.0)
		assert.True(t, near(bcc.A[2], -2.0))
		assert.True(t, near(bcc.B[2], 1.0))
		assert.True(t, near(bcc.Af[2], 4.0))
		assert.True(t, near(bcc.Bf[2], 0.0))
		// Imposed flux independent of phi
		assert.True(t, near(ScalarFaceFlux(bcc, 2, -7.0), 4.0))
	}
	{
		SetConvectiveOutletScalar(bcc, 3, 1.0, 1.0, 2.0)
		assert.True(t, near(bcc.B[3], 0.5))
		assert.True(t, near(bcc.A[3], 0.5))
		assert.True(t, near(bcc.Af[3], -1.0))
		assert.True(t, near(bcc.Bf[3], 1.0))
	}
	assert.False(t, NonFinite(bcc, 0))
}

func TestScalarConvDiffSplitCoeffs(t *testing.T) {
	bcc := field.NewBCCoeffs(1, 2, false)
	{
		// Dirichlet for convection, imposed flux for diffusion
		SetDirichletConvNeumannDiffScalar(bcc, 0, 3.0, 7.0)
		assert.True(t, near(bcc.A[0], 3.0))
		assert.True(t, near(bcc.B[0], 0.0))
		assert.True(t, near(bcc.Af[0], 7.0))
		assert.True(t, near(bcc.Bf[0], 0.0))
	}
	{
		SetAffineScalar(bcc, 1, 1.0, 0.5, 2.0)
		assert.True(t, near(ScalarFaceValue(bcc, 1, 4.0), 1.0+0.5*4.0))
	}
}

func TestDirichletVectorCoeffs(t *testing.T) {
	bcc := field.NewBCCoeffs(3, 2, false)
	pimp := [3]float64{1, 2, 3}
	hext := [3]float64{utils.RInfinite, utils.RInfinite, utils.RInfinite}
	SetDirichletVector(bcc, 0, pimp, hext, 4.0)
	vf := VectorFaceValue(bcc, 0, [3]float64{9, 9, 9})
	for i := 0; i < 3; i++ {
		assert.True(t, near(vf[i], pimp[i]))
	}
	qf := VectorFaceFlux(bcc, 0, [3]float64{2, 2, 2})
	for i := 0; i < 3; i++ {
		assert.True(t, near(qf[i], 4.0*(2.0-pimp[i])))
	}
}

func TestGeneralizedSymVectorCoeffs(t *testing.T) {
	var (
		bcc    = field.NewBCCoeffs(3, 1, false)
		normal = [3]float64{0, 0, 1}
		pimpv  = [3]float64{0, 0, 2}
	)
	SetGeneralizedSymVector(bcc, 0, pimpv, [3]float64{}, 3.0, normal)
	// Tangential components pass through, normal component pinned
	vf := VectorFaceValue(bcc, 0, [3]float64{1, 2, 5})
	assert.True(t, near(vf[0], 1.0))
	assert.True(t, near(vf[1], 2.0))
	assert.True(t, near(vf[2], 2.0))
	// Flux acts on the normal defect only
	qf := VectorFaceFlux(bcc, 0, [3]float64{1, 2, 5})
	assert.True(t, near(qf[0], 0.0))
	assert.True(t, near(qf[1], 0.0))
	assert.True(t, near(qf[2], 3.0*(5.0-2.0)))
}

func TestGeneralizedDirichletVectorCoeffs(t *testing.T) {
	var (
		bcc    = field.NewBCCoeffs(3, 1, false)
		normal = [3]float64{0, 1, 0}
		wall   = [3]float64{1, 0, 0}
	)
	SetGeneralizedDirichletVectorAniso(bcc, 0, wall, [3]float64{},
		utils.Sym33Diag(2.0), normal)
	// Tangential pinned to the wall velocity, normal passes through
	vf := VectorFaceValue(bcc, 0, [3]float64{3, 4, 5})
	assert.True(t, near(vf[0], 1.0))
	assert.True(t, near(vf[1], 4.0))
	assert.True(t, near(vf[2], 0.0))
	// Tangential shear toward the wall velocity, zero normal flux
	qf := VectorFaceFlux(bcc, 0, [3]float64{3, 4, 5})
	assert.True(t, near(qf[0], 2.0*(3.0-1.0)))
	assert.True(t, near(qf[1], 0.0))
	assert.True(t, near(qf[2], 2.0*5.0))
}

func TestWallVelocityVectorCoeffs(t *testing.T) {
	var (
		bcc    = field.NewBCCoeffs(3, 1, false)
		normal = [3]float64{0, 1, 0}
		wall   = [3]float64{1, 2, 0}
	)
	SetWallVelocityVector(bcc, 0, wall, 5.0, normal)
	// The full wall velocity lands on the face, normal part included
	vf := VectorFaceValue(bcc, 0, [3]float64{2, 3, 4})
	assert.True(t, near(vf[0], 1.0))
	assert.True(t, near(vf[1], 2.0))
	assert.True(t, near(vf[2], 0.0))
	// Tangential exchange at the wall-law coefficient, zero normal flux
	qf := VectorFaceFlux(bcc, 0, [3]float64{2, 3, 4})
	assert.True(t, near(qf[0], 5.0*(2.0-1.0)))
	assert.True(t, near(qf[1], 0.0))
	assert.True(t, near(qf[2], 5.0*4.0))
}

func TestTensorCoeffs(t *testing.T) {
	bcc := field.NewBCCoeffs(6, 1, true)
	pimp := [6]float64{1, 2, 3, 0.1, 0.2, 0.3}
	hext := [6]float64{utils.RInfinite, utils.RInfinite, utils.RInfinite,
		utils.RInfinite, utils.RInfinite, utils.RInfinite}
	SetDirichletTensor(bcc, 0, pimp, hext, 2.0)
	vf := TensorFaceValue(bcc, 0, [6]float64{9, 9, 9, 9, 9, 9})
	for i := 0; i < 6; i++ {
		assert.True(t, near(vf[i], pimp[i]))
		// Divergence pair mirrors the gradient pair
		assert.True(t, near(bcc.Ad[i], bcc.A[i]))
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) <= 1.e-08*math.Max(math.Abs(b), 1.0) {
		l = true
	}
	return
}

package bc

import (
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

/*
	Symmetric-tensor primitives (Reynolds stresses), compact component
	order [xx yy zz xy yz xz]. B and Bf are 6x6 blocks; the wall and
	symmetry closures fill off-diagonal entries, the plain forms below are
	component-diagonal.

	Tensor variables also carry the divergence pair Ad/Bd consumed by the
	momentum equation; the plain forms mirror A/B into it.
*/

// SetDirichletTensor imposes pimp component-wise with per-component
// external exchange coefficients.
func SetDirichletTensor(bcc *field.BCCoeffs, f int, pimp, hext [6]float64, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		ad, bd       = bcc.Ad, bcc.Bd
	)
	for i := 0; i < 6; i++ {
		ci := f*6 + i
		for j := 0; j < 6; j++ {
			ind := f*36 + 6*i + j
			b[ind], bf[ind], bd[ind] = 0., 0., 0.
		}
		diag := f*36 + 7*i
		if utils.IsInfinite(hext[i]) {
			a[ci] = pimp[i]
			af[ci] = -hint * pimp[i]
			bf[diag] = hint
		} else {
			heq := hint * hext[i] / (hint + hext[i])
			a[ci] = hext[i] * pimp[i] / (hint + hext[i])
			b[diag] = hint / (hint + hext[i])
			af[ci] = -heq * pimp[i]
			bf[diag] = heq
		}
		ad[ci] = a[ci]
		bd[diag] = b[diag]
	}
}

// SetNeumannTensor imposes the flux qimp component-wise.
func SetNeumannTensor(bcc *field.BCCoeffs, f int, qimp [6]float64, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		ad, bd       = bcc.Ad, bcc.Bd
	)
	for i := 0; i < 6; i++ {
		ci := f*6 + i
		for j := 0; j < 6; j++ {
			ind := f*36 + 6*i + j
			b[ind], bf[ind], bd[ind] = 0., 0., 0.
		}
		diag := f*36 + 7*i
		a[ci] = -qimp[i] / utils.MaxF(hint, 1.e-300)
		b[diag] = 1.
		af[ci] = qimp[i]
		ad[ci] = a[ci]
		bd[diag] = 1.
	}
}

// TensorFaceValue applies the face's A/B block to the compact tensor phi.
func TensorFaceValue(bcc *field.BCCoeffs, f int, phi [6]float64) (vf [6]float64) {
	for i := 0; i < 6; i++ {
		vf[i] = bcc.A[f*6+i]
		for j := 0; j < 6; j++ {
			vf[i] += bcc.B[f*36+6*i+j] * phi[j]
		}
	}
	return
}

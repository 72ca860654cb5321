// Package bc implements the boundary-condition translation core: it turns
// per-face user/model specifications (code + up to three values per
// component) into the coefficient arrays consumed by the linear-system
// assembly, and the closures (wall law, symmetry, I' reconstruction) those
// translations depend on.
package bc

import (
	"math"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

/*
	Face-coefficient primitives. Pure algebra, one call per face: no mesh
	traversal, no global state, commutative over face order. Every
	primitive fills the slots
		phi_f = A + B*phi_I'       (gradient / face value)
		q_f   = Af + Bf*phi_I'     (diffusive flux)
	hint is the internal exchange coefficient, diffusivity over the
	cell-to-face distance; hext an optional external one.
*/

// SetDirichletScalar imposes a value pimp, optionally relaxed by an
// external exchange coefficient hext (Robin form). An infinite hext is
// the strong Dirichlet limit.
func SetDirichletScalar(bcc *field.BCCoeffs, f int, pimp, hint, hext float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	if utils.IsInfinite(hext) {
		// Gradient BCs
		a[f] = pimp
		b[f] = 0.
		// Flux BCs
		af[f] = -hint * pimp
		bf[f] = hint
	} else {
		heq := hint * hext / (hint + hext)
		// Gradient BCs
		a[f] = hext * pimp / (hint + hext)
		b[f] = hint / (hint + hext)
		// Flux BCs
		af[f] = -heq * pimp
		bf[f] = heq
	}
}

// SetNeumannScalar imposes a flux qimp.
func SetNeumannScalar(bcc *field.BCCoeffs, f int, qimp, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	// Gradient BCs
	a[f] = -qimp / utils.MaxF(hint, 1.e-300)
	b[f] = 1.
	// Flux BCs
	af[f] = qimp
	bf[f] = 0.
}

// SetConvectiveOutletScalar convects pimp out of the domain at the face
// Courant number cfl.
func SetConvectiveOutletScalar(bcc *field.BCCoeffs, f int, pimp, cfl, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	// Gradient BCs
	b[f] = cfl / (1.0 + cfl)
	a[f] = (1.0 - b[f]) * pimp
	// Flux BCs
	af[f] = -hint * a[f]
	bf[f] = hint * (1.0 - b[f])
}

// SetAffineScalar imposes the affine face value pinf + ratio*phi_I'.
func SetAffineScalar(bcc *field.BCCoeffs, f int, pinf, ratio, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	// Gradient BCs
	b[f] = ratio
	a[f] = pinf
	// Flux BCs
	af[f] = -hint * a[f]
	bf[f] = hint * (1.0 - b[f])
}

// SetDirichletConvNeumannDiffScalar imposes pimp for the convective part
// and qimp for the diffusive part (code 13).
func SetDirichletConvNeumannDiffScalar(bcc *field.BCCoeffs, f int, pimp, qimp float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	// Gradient BCs
	a[f] = pimp
	b[f] = 0.
	// Flux BCs
	af[f] = qimp
	bf[f] = 0.
}

// SetAffineConvNeumannDiffScalar: affine convection + imposed diffusive
// flux (code 12).
func SetAffineConvNeumannDiffScalar(bcc *field.BCCoeffs, f int, pinf, ratio, qimp float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	a[f] = pinf
	b[f] = ratio
	af[f] = qimp
	bf[f] = 0.
}

// SetNeumannConvZeroDiffScalar: Neumann on the convective/gradient side,
// zero diffusive flux (code 15).
func SetNeumannConvZeroDiffScalar(bcc *field.BCCoeffs, f int, qimp, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	a[f] = -qimp / utils.MaxF(hint, 1.e-300)
	b[f] = 1.
	af[f] = 0.
	bf[f] = 0.
}

// ScalarFaceValue evaluates A + B*phi for verification and the face-value
// cache.
func ScalarFaceValue(bcc *field.BCCoeffs, f int, phi float64) float64 {
	return bcc.A[f] + bcc.B[f]*phi
}

// ScalarFaceFlux evaluates Af + Bf*phi.
func ScalarFaceFlux(bcc *field.BCCoeffs, f int, phi float64) float64 {
	return bcc.Af[f] + bcc.Bf[f]*phi
}

// NonFinite reports a non-finite translated coefficient on face f, the
// immediate-abort invariant check of the translation loop.
func NonFinite(bcc *field.BCCoeffs, f int) bool {
	var (
		dim = bcc.Dim
	)
	for i := 0; i < dim; i++ {
		if math.IsNaN(bcc.A[f*dim+i]) || math.IsInf(bcc.A[f*dim+i], 0) ||
			math.IsNaN(bcc.Af[f*dim+i]) || math.IsInf(bcc.Af[f*dim+i], 0) {
			return true
		}
		for j := 0; j < dim; j++ {
			ind := f*dim*dim + i*dim + j
			if math.IsNaN(bcc.B[ind]) || math.IsInf(bcc.B[ind], 0) ||
				math.IsNaN(bcc.Bf[ind]) || math.IsInf(bcc.Bf[ind], 0) {
				return true
			}
		}
	}
	return false
}

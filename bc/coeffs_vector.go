package bc

import (
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

/*
	Vector primitives. B and Bf are full 3x3 blocks per face so that the
	symmetry and generalized forms can couple components; the isotropic
	Dirichlet and Neumann cases fill the diagonal only.

	Index helpers: component i of face f lives at f*3+i, block entry
	(i,j) at f*9 + 3*i + j.
*/

// SetDirichletVector imposes pimp component-wise with per-component
// external exchange coefficients.
func SetDirichletVector(bcc *field.BCCoeffs, f int, pimp, hext [3]float64, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i
		for j := 0; j < 3; j++ {
			b[f*9+3*i+j] = 0.
			bf[f*9+3*i+j] = 0.
		}
		if utils.IsInfinite(hext[i]) {
			a[ci] = pimp[i]
			af[ci] = -hint * pimp[i]
			bf[f*9+4*i] = hint
		} else {
			heq := hint * hext[i] / (hint + hext[i])
			a[ci] = hext[i] * pimp[i] / (hint + hext[i])
			b[f*9+4*i] = hint / (hint + hext[i])
			af[ci] = -heq * pimp[i]
			bf[f*9+4*i] = heq
		}
	}
}

// SetDirichletVectorAniso imposes pimp strongly with a tensor internal
// exchange coefficient (anisotropic diffusion).
func SetDirichletVectorAniso(bcc *field.BCCoeffs, f int, pimp [3]float64, hint [6]float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		hp           = utils.Sym33Vec3(hint, pimp)
	)
	// Compact -> full block positions for the symmetric hint
	full := [3][3]float64{
		{hint[0], hint[3], hint[5]},
		{hint[3], hint[1], hint[4]},
		{hint[5], hint[4], hint[2]},
	}
	for i := 0; i < 3; i++ {
		ci := f*3 + i
		a[ci] = pimp[i]
		af[ci] = -hp[i]
		for j := 0; j < 3; j++ {
			b[f*9+3*i+j] = 0.
			bf[f*9+3*i+j] = full[i][j]
		}
	}
}

// SetNeumannVector imposes the flux qimp component-wise.
func SetNeumannVector(bcc *field.BCCoeffs, f int, qimp [3]float64, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i
		a[ci] = -qimp[i] / utils.MaxF(hint, 1.e-300)
		af[ci] = qimp[i]
		for j := 0; j < 3; j++ {
			b[f*9+3*i+j] = 0.
			bf[f*9+3*i+j] = 0.
		}
		b[f*9+4*i] = 1.
	}
}

// SetConvectiveOutletVector convects pimp out at the face Courant number.
func SetConvectiveOutletVector(bcc *field.BCCoeffs, f int, pimp [3]float64, cfl, hint float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i
		for j := 0; j < 3; j++ {
			b[f*9+3*i+j] = 0.
			bf[f*9+3*i+j] = 0.
		}
		b[f*9+4*i] = cfl / (1.0 + cfl)
		a[ci] = (1.0 - b[f*9+4*i]) * pimp[i]
		af[ci] = -hint * a[ci]
		bf[f*9+4*i] = hint * (1.0 - b[f*9+4*i])
	}
}

// SetGeneralizedSymVector enforces Dirichlet on the normal component and
// Neumann on the tangential ones, isotropic exchange coefficient.
func SetGeneralizedSymVector(bcc *field.BCCoeffs, f int, pimpv, qimpv [3]float64,
	hint float64, normal [3]float64) {
	SetGeneralizedSymVectorAniso(bcc, f, pimpv, qimpv, utils.Sym33Diag(hint), normal)
}

// SetGeneralizedSymVectorAniso is the anisotropic generalized symmetry:
// the gradient side gets [I - n(x)n]*(Qimp/H) plus the normal Dirichlet,
// the flux side the dual decomposition.
func SetGeneralizedSymVectorAniso(bcc *field.BCCoeffs, f int, pimpv, qimpv [3]float64,
	hint [6]float64, normal [3]float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		invh         = utils.Sym33Inv(hint)
		qshint       = utils.Sym33Vec3(invh, qimpv)
		hintpv       = utils.Sym33Vec3(hint, pimpv)
		hintnm       = utils.Sym33Vec3(hint, normal)
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i

		// Gradient BCs; "[1 - n(x)n] Qimp / hint" is split in two
		a[ci] = -qshint[i]
		for j := 0; j < 3; j++ {
			a[ci] += normal[i] * normal[j] * (pimpv[j] + qshint[j])
			if j == i {
				b[f*9+3*i+j] = 1.0 - normal[i]*normal[j]
			} else {
				b[f*9+3*i+j] = -normal[i] * normal[j]
			}
		}

		// Flux BCs; "[1 - n(x)n] Qimp" is split in two
		af[ci] = qimpv[i]
		for j := 0; j < 3; j++ {
			af[ci] -= normal[i] * normal[j] * (hintpv[j] + qimpv[j])
			bf[f*9+3*i+j] = hintnm[i] * normal[j]
		}
	}
}

// SetGeneralizedDirichletVectorAniso is the dual pattern: Dirichlet on
// the tangential components, Neumann on the normal one.
func SetGeneralizedDirichletVectorAniso(bcc *field.BCCoeffs, f int, pimpv, qimpv [3]float64,
	hint [6]float64, normal [3]float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		invh         = utils.Sym33Inv(hint)
		qshint       = utils.Sym33Vec3(invh, qimpv)
		hintpv       = utils.Sym33Vec3(hint, pimpv)
		hintnm       = utils.Sym33Vec3(hint, normal)
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i

		// Gradient BCs; "[1 - n(x)n] Pimp" is split in two
		a[ci] = pimpv[i]
		for j := 0; j < 3; j++ {
			a[ci] -= normal[i] * normal[j] * (pimpv[j] + qshint[j])
			b[f*9+3*i+j] = normal[i] * normal[j]
		}

		// Flux BCs
		af[ci] = -hintpv[i]
		for j := 0; j < 3; j++ {
			af[ci] += normal[i] * normal[j] * (qimpv[j] + hintpv[j])
			bf[f*9+3*i+j] = sym33At(hint, i, j) - hintnm[i]*normal[j]
		}
	}
}

// SetWallVelocityVector closes a wall-law wall: the gradient side carries
// the full wall velocity (no-penetration included), the flux side
// exchanges the tangential components at the wall-law coefficient and
// carries no normal diffusive flux.
func SetWallVelocityVector(bcc *field.BCCoeffs, f int, pimpv [3]float64,
	hflui float64, normal [3]float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		pn           = utils.Dot3(pimpv, normal)
	)
	for i := 0; i < 3; i++ {
		ci := f*3 + i
		a[ci] = pimpv[i]
		af[ci] = -hflui * (pimpv[i] - pn*normal[i])
		for j := 0; j < 3; j++ {
			ind := f*9 + 3*i + j
			b[ind] = 0.
			if i == j {
				bf[ind] = hflui * (1.0 - normal[i]*normal[j])
			} else {
				bf[ind] = -hflui * normal[i] * normal[j]
			}
		}
	}
}

// sym33At reads entry (i,j) of a compact symmetric tensor.
func sym33At(s [6]float64, i, j int) float64 {
	if i == j {
		return s[i]
	}
	if i > j {
		i, j = j, i
	}
	switch {
	case i == 0 && j == 1:
		return s[3]
	case i == 1 && j == 2:
		return s[4]
	default:
		return s[5]
	}
}

// VectorFaceValue applies the face's A/B block to phi at I'.
func VectorFaceValue(bcc *field.BCCoeffs, f int, phi [3]float64) (vf [3]float64) {
	for i := 0; i < 3; i++ {
		vf[i] = bcc.A[f*3+i]
		for j := 0; j < 3; j++ {
			vf[i] += bcc.B[f*9+3*i+j] * phi[j]
		}
	}
	return
}

// VectorFaceFlux applies the face's Af/Bf block to phi at I'.
func VectorFaceFlux(bcc *field.BCCoeffs, f int, phi [3]float64) (qf [3]float64) {
	for i := 0; i < 3; i++ {
		qf[i] = bcc.Af[f*3+i]
		for j := 0; j < 3; j++ {
			qf[i] += bcc.Bf[f*9+3*i+j] * phi[j]
		}
	}
	return
}

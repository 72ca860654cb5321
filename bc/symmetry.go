package bc

import (
	"github.com/notargets/gofvm/field"
)

/*
	Symmetry closure: vectors and tensors on a symmetry face lose their
	normal component; scalars see a homogeneous Neumann. The mass-flux
	correction is disabled on these faces (isympa = 0).

	Like the wall law, the closure is stateless per face: a second pass
	over unchanged inputs writes bitwise-identical coefficients.
*/

// Symmetry marks codes and values on every symmetry face.
func (s *State) Symmetry() {
	var (
		m = s.Mesh
	)
	for f := 0; f < m.NBFaces; f++ {
		if s.FaceType[f] != FaceSymmetry {
			continue
		}
		s.Isympa[f] = 0
		for _, fl := range s.Reg.Solved() {
			if fl.BC == nil || fl.BC.Icodcl[f] != field.CodeUndefined {
				continue
			}
			switch fl.Dim {
			case 3, 6:
				fl.BC.Icodcl[f] = field.CodeSymmetry
			default:
				fl.BC.Icodcl[f] = field.CodeNeumann
				fl.BC.RC3[f] = field.Set(0)
			}
		}
	}
}

// projector66 builds the compact 6x6 matrix mapping a symmetric tensor T
// to its symmetry projection P·T·P with P = I - n(x)n, in component order
// [xx yy zz xy yz xz].
func projector66(n [3]float64) (q [6][6]float64) {
	var p [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = -n[i] * n[j]
		}
		p[i][i] += 1.0
	}
	// Compact index -> tensor index pairs
	pairs := [6][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 1}, {1, 2}, {0, 2}}
	for a := 0; a < 6; a++ {
		i, j := pairs[a][0], pairs[a][1]
		for b := 0; b < 6; b++ {
			k, l := pairs[b][0], pairs[b][1]
			// (P T P)_ij = P_ik T_kl P_lj, accounting for the symmetric
			// storage of T (off-diagonal compact entries appear twice)
			v := p[i][k]*p[j][l] + p[i][l]*p[j][k]
			if k == l {
				v = p[i][k] * p[j][l]
			}
			q[a][b] = v
		}
	}
	return
}

// SetSymmetryTensor translates the symmetry projection for a compact
// symmetric tensor variable (Reynolds stresses) on face f: the gradient
// side reproduces the projected tensor, the flux side pins the normal
// components with the exchange tensor hint.
func SetSymmetryTensor(bcc *field.BCCoeffs, f int, hint float64, normal [3]float64) {
	var (
		a, b, af, bf = bcc.A, bcc.B, bcc.Af, bcc.Bf
		ad, bd       = bcc.Ad, bcc.Bd
		q            = projector66(normal)
	)
	for i := 0; i < 6; i++ {
		ci := f*6 + i
		a[ci] = 0.
		af[ci] = 0.
		ad[ci] = 0.
		for j := 0; j < 6; j++ {
			ind := f*36 + 6*i + j
			b[ind] = q[i][j]
			bd[ind] = q[i][j]
			// Diffusive flux acts on the removed (normal-coupled) part
			if i == j {
				bf[ind] = hint * (1.0 - q[i][j])
			} else {
				bf[ind] = -hint * q[i][j]
			}
		}
	}
}

package bc

import (
	"math"

	"github.com/notargets/gofvm/field"
)

/*
	Face-value cache: the gradient and diffusive-flux kernels consume the
	boundary values

		val_ip   phi at I'
		val_f    A + B*phi_I'          (convective face value)
		val_f_d  Af + Bf*phi_I'        (diffusive face flux)

	plus the limited variants used by the slope-limited convection scheme.
	The cache lives on the field's BC record and is invalidated whenever
	the translation loop rewrites the coefficients.
*/

// EnsureFaceValues fills the cache for one field, reconstructing I' first.
// A valid cache is returned as-is.
func EnsureFaceValues(s *State, fld *field.Field) error {
	var (
		bcc = fld.BC
		nbf = s.Mesh.NBFaces
		dim = fld.Dim
	)
	if bcc == nil {
		return nil
	}
	if bcc.CacheValid {
		return nil
	}

	var (
		ip  []float64
		err error
	)
	switch dim {
	case 3:
		ip, err = VectorIP(s, fld, false)
	case 6:
		ip, err = TensorIP(s, fld, false)
	default:
		ip, err = ScalarIP(s, fld, false)
	}
	if err != nil {
		return err
	}

	if bcc.ValIP == nil {
		bcc.ValIP = make([]float64, nbf*dim)
		bcc.ValF = make([]float64, nbf*dim)
		bcc.ValFD = make([]float64, nbf*dim)
		bcc.ValIPLim = make([]float64, nbf*dim)
		bcc.ValFLim = make([]float64, nbf*dim)
		bcc.ValFD2 = make([]float64, nbf*dim)
	}
	copy(bcc.ValIP, ip)

	var (
		m      = s.Mesh
		vals   = fld.Val()
		cellIF = m.CellIFaces()
	)
	for f := 0; f < nbf; f++ {
		c := m.BFaceCells[f]

		// Limited I' first: the reconstruction increment is bounded by
		// the largest neighbor increment scaled with the boundary limiter
		for i := 0; i < dim; i++ {
			ci := f*dim + i
			ipl := ip[ci]
			if cl := fld.EqParams.ClimGrB; cl >= 0 {
				cell := vals[c*dim+i]
				var dphiMax float64
				for _, fi := range cellIF[c] {
					nb := m.IFaceCells[fi][0]
					if nb == c {
						nb = m.IFaceCells[fi][1]
					}
					if nb >= m.NCellsExt {
						continue
					}
					if a := math.Abs(vals[nb*dim+i] - cell); a > dphiMax {
						dphiMax = a
					}
				}
				if d := ipl - cell; math.Abs(d) > cl*dphiMax {
					ipl = cell + math.Copysign(cl*dphiMax, d)
				}
			}
			bcc.ValIPLim[ci] = ipl
		}

		for i := 0; i < dim; i++ {
			ci := f*dim + i
			if dim == 1 {
				bcc.ValF[ci] = bcc.A[f] + bcc.B[f]*ip[f]
				bcc.ValFD[ci] = bcc.Af[f] + bcc.Bf[f]*ip[f]
				bcc.ValFLim[ci] = bcc.A[f] + bcc.B[f]*bcc.ValIPLim[f]
				bcc.ValFD2[ci] = bcc.Af[f] + bcc.Bf[f]*bcc.ValIPLim[f]
				continue
			}
			vf, qf := bcc.A[ci], bcc.Af[ci]
			vfl, qfl := bcc.A[ci], bcc.Af[ci]
			for j := 0; j < dim; j++ {
				ind := f*dim*dim + dim*i + j
				vf += bcc.B[ind] * ip[f*dim+j]
				qf += bcc.Bf[ind] * ip[f*dim+j]
				vfl += bcc.B[ind] * bcc.ValIPLim[f*dim+j]
				qfl += bcc.Bf[ind] * bcc.ValIPLim[f*dim+j]
			}
			bcc.ValF[ci] = vf
			bcc.ValFD[ci] = qf
			bcc.ValFLim[ci] = vfl
			bcc.ValFD2[ci] = qfl
		}
	}
	bcc.CacheValid = true
	return nil
}

// InvalidateFaceValues drops every field's cache (mesh motion, property
// update outside the BC pipeline).
func InvalidateFaceValues(s *State) {
	for _, fld := range s.Reg.Solved() {
		if fld.BC != nil {
			fld.BC.CacheValid = false
		}
	}
}

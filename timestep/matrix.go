package timestep

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

/*
	Stability operators: the per-cell time-step bounds read the diagonals
	of the upwind convection matrix and of the diffusion matrix, assembled
	exactly as the transport solve assembles them. Off-diagonals are kept
	so the steady pseudo-step can use full row sums.
*/

// buildConvection assembles the upwind convection operator from the
// oriented face mass fluxes (interior flux positive from cell i to j).
func buildConvection(m *mesh.Mesh, massFluxI, massFluxB []float64) *sparse.CSR {
	dok := sparse.NewDOK(m.NCells, m.NCells)
	for f := 0; f < m.NIFaces; f++ {
		var (
			i = m.IFaceCells[f][0]
			j = m.IFaceCells[f][1]
			q = massFluxI[f]
		)
		out := utils.MaxF(q, 0)
		in := utils.MaxF(-q, 0)
		dok.Set(i, i, dok.At(i, i)+out)
		if j < m.NCells {
			dok.Set(i, j, dok.At(i, j)-in)
			dok.Set(j, j, dok.At(j, j)+in)
			dok.Set(j, i, dok.At(j, i)-out)
		}
	}
	for f := 0; f < m.NBFaces; f++ {
		c := m.BFaceCells[f]
		out := utils.MaxF(massFluxB[f], 0)
		dok.Set(c, c, dok.At(c, c)+out)
	}
	return dok.ToCSR()
}

// buildDiffusion assembles the symmetric diffusion operator with the
// arithmetic face mean of the cell diffusivity and the surface over
// distance geometric factor.
func buildDiffusion(m *mesh.Mesh, visc []float64) *sparse.CSR {
	dok := sparse.NewDOK(m.NCells, m.NCells)
	for f := 0; f < m.NIFaces; f++ {
		var (
			i = m.IFaceCells[f][0]
			j = m.IFaceCells[f][1]
		)
		vf := visc[i]
		if j < len(visc) {
			vf = 0.5 * (visc[i] + visc[j])
		}
		coef := vf * m.IFaceSurf[f] / utils.MaxF(m.IFaceDist[f], 1.e-300)
		dok.Set(i, i, dok.At(i, i)+coef)
		if j < m.NCells {
			dok.Set(i, j, dok.At(i, j)-coef)
			dok.Set(j, j, dok.At(j, j)+coef)
			dok.Set(j, i, dok.At(j, i)-coef)
		}
	}
	for f := 0; f < m.NBFaces; f++ {
		c := m.BFaceCells[f]
		coef := visc[c] * m.BFaceSurf[f] / utils.MaxF(m.BDist[f], 1.e-300)
		dok.Set(c, c, dok.At(c, c)+coef)
	}
	return dok.ToCSR()
}

// rowSumAbs returns sum_j |A_ij| per row, the conservative envelope used
// by the steady pseudo-step.
func rowSumAbs(a *sparse.CSR, n int) []float64 {
	out := make([]float64, n)
	a.DoNonZero(func(i, j int, v float64) {
		if v < 0 {
			v = -v
		}
		out[i] += v
	})
	return out
}

// diagOf extracts the diagonal.
func diagOf(a *sparse.CSR, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a.At(i, i)
	}
	return out
}

package physics

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
)

/*
	ALE mesh-velocity boundary conditions, legacy path. The face types
	set by the case translate into mesh-velocity codes:

		fixed                 Dirichlet zero
		sliding               generalized symmetry (tangential free)
		imposed velocity      Dirichlet, values from the case/user layer
		imposed displacement  Dirichlet, displacement increment over dt
		free surface          homogeneous Neumann

	The hook also maintains the per-vertex imposed-motion flags consumed
	by the mesh-deformation solve: a vertex touching any imposed face is
	pinned to the boundary motion.
*/

type ALE struct {
	// ImposedDisplacement per boundary face (face*3), consumed by the
	// displacement-driven faces; nil when the case has none.
	ImposedDisplacement []float64

	// VtxImposed is (re)built on every call: true for vertices whose
	// motion is dictated by a boundary face.
	VtxImposed []bool

	// BFaceVertices lists the vertex indices of each boundary face.
	BFaceVertices [][]int
}

func (*ALE) Name() string     { return "ale" }
func (*ALE) RunsAtInit() bool { return true }

func (a *ALE) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	if s.Opts.ALE == bc.ALENone {
		return nil
	}
	var (
		m  = s.Mesh
		mv = s.Reg.MustGet(field.MeshVelocity)
		dt = s.Reg.MustGet(field.Dt).Val()
	)
	if a.VtxImposed == nil {
		a.VtxImposed = make([]bool, m.NVertices)
	}
	for v := range a.VtxImposed {
		a.VtxImposed[v] = false
	}

	for f := 0; f < m.NBFaces; f++ {
		imposed := false
		switch s.FaceType[f] {
		case bc.FaceALEFixed:
			mv.BC.Icodcl[f] = field.CodeDirichlet
			for i := 0; i < 3; i++ {
				mv.BC.RC1[f*3+i] = field.Set(0)
			}
			imposed = true

		case bc.FaceALESliding:
			mv.BC.Icodcl[f] = field.CodeSymmetry

		case bc.FaceALEImposedVelocity:
			// Values come from the case/user layer; only the code is set
			mv.BC.Icodcl[f] = field.CodeDirichlet
			imposed = true

		case bc.FaceALEImposedDisplacement:
			c := m.BFaceCells[f]
			oodt := 1.0 / dt[c]
			mv.BC.Icodcl[f] = field.CodeDirichlet
			for i := 0; i < 3; i++ {
				var d float64
				if a.ImposedDisplacement != nil {
					d = a.ImposedDisplacement[f*3+i]
				}
				mv.BC.RC1[f*3+i] = field.Set(d * oodt)
			}
			imposed = true

		case bc.FaceALEFreeSurface:
			mv.BC.Icodcl[f] = field.CodeNeumann
			for i := 0; i < 3; i++ {
				mv.BC.RC3[f*3+i] = field.Set(0)
			}

		default:
			continue
		}

		if imposed && a.BFaceVertices != nil {
			for _, v := range a.BFaceVertices[f] {
				a.VtxImposed[v] = true
			}
		}
	}
	return nil
}

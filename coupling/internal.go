package coupling

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

/*
	Internal coupling: two groups of boundary faces of the same mesh (or
	of two meshes solved together) exchange a conjugate condition, wall
	films and fluid-solid heat transfer being the canonical uses. Each
	side sees the other as a Robin boundary built from the donor side's
	reconstructed I' value; the implicit part enters the linear system as
	-h·S off-diagonal blocks between the paired cells.

	Pairing is by position: faces are matched once at setup by nearest
	face center, then exchanges move values by pair index through the
	mailboxes.
*/

// Mailbox is one direction of a coupled exchange: values posted by the
// donor side, read by the receiver. In-process couplings share slices;
// a distributed variant would back Post/Fetch with messages.
type Mailbox struct {
	vals   []float64
	posted bool
}

func (mb *Mailbox) Post(v []float64) {
	if mb.vals == nil {
		mb.vals = make([]float64, len(v))
	}
	copy(mb.vals, v)
	mb.posted = true
}

func (mb *Mailbox) Fetch() ([]float64, error) {
	if !mb.posted {
		return nil, fmt.Errorf("coupling mailbox read before any post")
	}
	return mb.vals, nil
}

// InternalCoupling pairs two face groups of one computation.
type InternalCoupling struct {
	ID int

	m *mesh.Mesh

	// FacesA/FacesB are the paired boundary faces, index-aligned after
	// Locate.
	FacesA, FacesB []int

	// ExchangeH is the per-pair exchange coefficient of the interface.
	ExchangeH []float64

	boxAtoB, boxBtoA Mailbox
}

func NewInternalCoupling(id int, m *mesh.Mesh, facesA, facesB []int, h float64) (ic *InternalCoupling, err error) {
	if len(facesA) == 0 || len(facesB) == 0 {
		return nil, fmt.Errorf("coupling %d: empty face group", id)
	}
	ic = &InternalCoupling{ID: id, m: m, FacesA: facesA, FacesB: facesB}
	if err = ic.locate(); err != nil {
		return nil, err
	}
	ic.ExchangeH = make([]float64, len(ic.FacesA))
	for i := range ic.ExchangeH {
		ic.ExchangeH[i] = h
	}
	return ic, nil
}

// locate matches each A face to its nearest B face by center distance
// and reorders FacesB accordingly. Pair counts must agree.
func (ic *InternalCoupling) locate() error {
	if len(ic.FacesA) != len(ic.FacesB) {
		return fmt.Errorf("coupling %d: %d faces on side A, %d on side B",
			ic.ID, len(ic.FacesA), len(ic.FacesB))
	}
	var (
		m      = ic.m
		paired = make([]int, len(ic.FacesA))
		used   = make([]bool, len(ic.FacesB))
	)
	for i, fa := range ic.FacesA {
		best, bestD := -1, 0.0
		for j, fb := range ic.FacesB {
			if used[j] {
				continue
			}
			var d2 float64
			for d := 0; d < 3; d++ {
				dx := m.BFaceCOG[fa][d] - m.BFaceCOG[fb][d]
				d2 += dx * dx
			}
			if best < 0 || d2 < bestD {
				best, bestD = j, d2
			}
		}
		paired[i] = ic.FacesB[best]
		used[best] = true
	}
	ic.FacesB = paired
	return nil
}

// ExchangeByFaceID posts per-pair values from one side and returns the
// other side's latest post.
func (ic *InternalCoupling) ExchangeByFaceID(fromA bool, send []float64) ([]float64, error) {
	if len(send) != len(ic.FacesA) {
		return nil, fmt.Errorf("coupling %d: exchange length %d, want %d",
			ic.ID, len(send), len(ic.FacesA))
	}
	if fromA {
		ic.boxAtoB.Post(send)
		return ic.boxBtoA.Fetch()
	}
	ic.boxBtoA.Post(send)
	return ic.boxAtoB.Fetch()
}

// ExchangeByCellID gathers cell values of the paired faces' cells, posts
// them and returns the donor side's cell values in pair order.
func (ic *InternalCoupling) ExchangeByCellID(fromA bool, cellVals []float64) ([]float64, error) {
	var (
		faces = ic.FacesA
	)
	if !fromA {
		faces = ic.FacesB
	}
	send := make([]float64, len(faces))
	for i, f := range faces {
		send[i] = cellVals[ic.m.BFaceCells[f]]
	}
	return ic.ExchangeByFaceID(fromA, send)
}

// MatrixContribution adds the implicit -h·S off-diagonal blocks (and the
// balancing diagonal) of the coupled interface to the system matrix.
func (ic *InternalCoupling) MatrixContribution(a *sparse.DOK) {
	var (
		m = ic.m
	)
	for i := range ic.FacesA {
		var (
			fa = ic.FacesA[i]
			fb = ic.FacesB[i]
			ca = m.BFaceCells[fa]
			cb = m.BFaceCells[fb]
			hs = ic.ExchangeH[i] * m.BFaceSurf[fa]
		)
		a.Set(ca, cb, a.At(ca, cb)-hs)
		a.Set(cb, ca, a.At(cb, ca)-hs)
		a.Set(ca, ca, a.At(ca, ca)+hs)
		a.Set(cb, cb, a.At(cb, cb)+hs)
	}
}

/*
ApplyRobin overrides the coupled faces of a field with the Robin
condition built from the donor side's I' value: Dirichlet toward the
donor value with the interface exchange coefficient as the external
resistance. Runs inside the BC collect stage, before translation.
*/
func (ic *InternalCoupling) ApplyRobin(s *bc.State, fld *field.Field) error {
	if fld.EqParams.CouplingID != ic.ID {
		return nil
	}
	ipb, err := bc.ScalarIP(s, fld, false)
	if err != nil {
		return err
	}
	sideVals := func(faces []int) []float64 {
		out := make([]float64, len(faces))
		for i, f := range faces {
			out[i] = ipb[f]
		}
		return out
	}

	// Both sides post before either fetches, so the first iteration is
	// already fully paired
	ic.boxAtoB.Post(sideVals(ic.FacesA))
	ic.boxBtoA.Post(sideVals(ic.FacesB))
	fromB, err := ic.boxBtoA.Fetch()
	if err != nil {
		return err
	}
	fromA, err := ic.boxAtoB.Fetch()
	if err != nil {
		return err
	}

	apply := func(faces []int, donor []float64) {
		for i, f := range faces {
			s.FaceType[f] = bc.FaceCoupled
			fld.BC.Icodcl[f] = field.CodeDirichlet
			fld.BC.RC1[f] = field.Set(donor[i])
			fld.BC.RC2[f] = field.Set(utils.MaxF(ic.ExchangeH[i], 0))
		}
	}
	apply(ic.FacesA, fromB)
	apply(ic.FacesB, fromA)
	return nil
}

package physics

import (
	"github.com/notargets/gofvm/bc"
)

/*
	Radiative transfer coupling at the boundary. The radiation solve runs
	between outer iterations and needs the convective side of the wall
	heat balance: the exchange coefficient and the convective flux toward
	the wall, both derived from the previous iteration's thermal boundary
	outputs (theipb/hbord). The radiative module then returns updated wall
	temperatures that the next iteration's Dirichlet conversion picks up.
*/

type Radiative struct {
	// WallEmissivity per boundary face; nil means gray walls at 1.
	WallEmissivity []float64
}

func (Radiative) Name() string     { return "radiative_transfer" }
func (Radiative) RunsAtInit() bool { return false }

func (r Radiative) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	var (
		m = s.Mesh
	)
	for f := 0; f < m.NBFaces; f++ {
		switch s.FaceType[f] {
		case bc.FaceSmoothWall, bc.FaceRoughWall:
		default:
			s.Bhconv[f] = 0
			s.Bfconv[f] = 0
			continue
		}
		h := s.Hbord[f]
		s.Bhconv[f] = h
		// Convective flux toward the wall, against the fluid-side value
		s.Bfconv[f] = h * (s.Theipb[f] - s.WallTemp[f])
	}
	return nil
}

package physics

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
)

// MeteoProfile evaluates the large-scale state at height z: velocity,
// potential temperature and the k-epsilon pair of the neutral surface
// layer.
type MeteoProfile interface {
	Velocity(z float64) [3]float64
	Temperature(z float64) float64
	TurbKE(z float64) (k, eps float64)
}

/*
	Atmospheric inlets: every inlet face whose variables were left
	unspecified receives the meteo profile evaluated at the face height.
	User-set values always win; the profile only fills the gaps, so mixed
	cases (imposed velocity, profile temperature) need no special code.
*/

type Atmospheric struct {
	Profile MeteoProfile
}

func (Atmospheric) Name() string     { return "atmospheric" }
func (Atmospheric) RunsAtInit() bool { return true }

func (a Atmospheric) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	if a.Profile == nil {
		return nil
	}
	var (
		m   = s.Mesh
		vel = s.Reg.MustGet(field.Velocity)
	)
	for f := 0; f < m.NBFaces; f++ {
		if s.FaceType[f] != bc.FaceInlet && s.FaceType[f] != bc.FaceConvectiveInlet {
			continue
		}
		z := m.BFaceCOG[f][2]

		if vel.BC.Icodcl[f] == field.CodeUndefined {
			uv := a.Profile.Velocity(z)
			vel.BC.Icodcl[f] = field.CodeDirichlet
			for i := 0; i < 3; i++ {
				if !vel.BC.RC1[f*3+i].Defined {
					vel.BC.RC1[f*3+i] = field.Set(uv[i])
				}
			}
		}

		k, eps := a.Profile.TurbKE(z)
		setIfUndefined(s, field.K, f, k)
		setIfUndefined(s, field.Epsilon, f, eps)

		if s.Opts.Thermal != bc.ThermalNone && s.Reg.Has(field.Temperature) {
			setIfUndefined(s, field.Temperature, f, a.Profile.Temperature(z))
		}
	}
	return nil
}

func setIfUndefined(s *bc.State, name string, f int, pimp float64) {
	if !s.Reg.Has(name) {
		return
	}
	fl := s.Reg.MustGet(name)
	if fl.BC == nil || fl.BC.Icodcl[f] != field.CodeUndefined {
		return
	}
	fl.BC.Icodcl[f] = field.CodeDirichlet
	fl.BC.RC1[f] = field.Set(pimp)
}

package physics

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
)

/*
	Cooling-tower inlets: the air enters with an imposed humidity and
	temperature, the injected-water scalars enter at zero (rain forms
	inside the exchange zones, not at the boundary). Outlets stay free.
*/

type CoolingTower struct {
	InletHumidity    float64
	InletTemperature float64

	// Names of the water-phase scalars (mass fraction, enthalpy, rain).
	WaterScalars []string
}

func (CoolingTower) Name() string     { return "cooling_towers" }
func (CoolingTower) RunsAtInit() bool { return true }

func (ct CoolingTower) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	var (
		m = s.Mesh
	)
	for f := 0; f < m.NBFaces; f++ {
		if s.FaceType[f] != bc.FaceInlet && s.FaceType[f] != bc.FaceConvectiveInlet {
			continue
		}
		setIfUndefined(s, "humidity", f, ct.InletHumidity)
		if s.Reg.Has(field.Temperature) {
			setIfUndefined(s, field.Temperature, f, ct.InletTemperature)
		}
		for _, name := range ct.WaterScalars {
			setIfUndefined(s, name, f, 0)
		}
	}
	return nil
}

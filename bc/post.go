package bc

import (
	"github.com/notargets/gofvm/field"
)

/*
	Post stage: boundary outputs derived from the freshly translated
	coefficients. The wall stress feeds the force reporting and the
	conjugate-heat-transfer exchange; theipb/hbord feed the boundary
	temperature update and the radiative module.
*/

// Post fills BStress from the velocity flux coefficients and the thermal
// boundary outputs from the thermal variable's coefficients.
func (s *State) Post(velIPB []float64) error {
	var (
		m   = s.Mesh
		vel = s.Reg.MustGet(field.Velocity)
		vbc = vel.BC
	)
	for f := 0; f < m.NBFaces; f++ {
		for i := 0; i < 3; i++ {
			st := vbc.Af[f*3+i]
			for j := 0; j < 3; j++ {
				st += vbc.Bf[f*9+3*i+j] * velIPB[f*3+j]
			}
			s.BStress[f*3+i] = st
		}
	}

	th := s.thermalField()
	if th == nil || th.BC == nil {
		return nil
	}
	ipb, err := ScalarIP(s, th, false)
	if err != nil {
		return err
	}
	bcc := th.BC
	for f := 0; f < m.NBFaces; f++ {
		val := bcc.A[f] + bcc.B[f]*ipb[f]
		if s.Opts.Thermal == ThermalEnthalpy && s.Opts.EnthalpyToTemp != nil {
			if s.WallTemp[f] != 0 {
				// The converted Dirichlet keeps the user's temperature
				val = s.WallTemp[f]
			} else {
				val = s.Opts.EnthalpyToTemp(f, val)
			}
		}
		s.Theipb[f] = val
		s.Hbord[f] = bcc.Bf[f]
	}
	return nil
}

// thermalField returns the active thermal variable, nil when none.
func (s *State) thermalField() *field.Field {
	switch s.Opts.Thermal {
	case ThermalTemperature:
		if s.Reg.Has(field.Temperature) {
			return s.Reg.MustGet(field.Temperature)
		}
	case ThermalEnthalpy, ThermalTotalEnergy:
		if s.Reg.Has(field.Enthalpy) {
			return s.Reg.MustGet(field.Enthalpy)
		}
	}
	return nil
}

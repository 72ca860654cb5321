package physics

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
)

/*
	Compressible-flow boundary enrichment. Outlets split on the local Mach
	number: subsonic outlets pin the pressure to the imposed (or
	reference) value and let the energy float; supersonic outlets impose
	nothing, every variable is convected out. Inlets with an imposed
	total state get their static pressure recomputed from the perfect-gas
	relations.
*/

type Compressible struct{}

func (Compressible) Name() string     { return "compressible" }
func (Compressible) RunsAtInit() bool { return true }

func (Compressible) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	if !s.Opts.Compress {
		return nil
	}
	var (
		m     = s.Mesh
		opts  = s.Opts
		press = s.Reg.MustGet(field.Pressure)
		vel   = s.Reg.MustGet(field.Velocity)
		gamma = opts.Phys.Gamma
	)
	if gamma <= 1 {
		gamma = 1.4
	}
	var energy *field.Field
	if s.Reg.Has(field.Enthalpy) {
		energy = s.Reg.MustGet(field.Enthalpy)
	}

	velv := vel.Val()
	var dens []float64
	if s.Reg.Has(field.Density) {
		dens = s.Reg.MustGet(field.Density).Val()
	}

	for f := 0; f < m.NBFaces; f++ {
		if s.Isostd[f] != 1 {
			continue
		}
		c := m.BFaceCells[f]
		rho := opts.Phys.Ro0
		if dens != nil {
			rho = dens[c]
		}
		p := press.Val()[c]
		if p <= 0 {
			p = opts.Phys.P0
		}
		c2 := gamma * p / rho // speed of sound squared
		var u2 float64
		for i := 0; i < 3; i++ {
			u2 += velv[c*3+i] * velv[c*3+i]
		}

		if u2 >= c2 {
			// Supersonic outlet: fully convected
			if press.BC.Icodcl[f] == field.CodeUndefined {
				press.BC.Icodcl[f] = field.CodeNeumann
				press.BC.RC3[f] = field.Set(0)
			}
			if energy != nil && energy.BC.Icodcl[f] == field.CodeUndefined {
				energy.BC.Icodcl[f] = field.CodeNeumann
				energy.BC.RC3[f] = field.Set(0)
			}
			continue
		}

		// Subsonic: pressure pinned, default to the reference value
		if press.BC.Icodcl[f] == field.CodeUndefined {
			press.BC.Icodcl[f] = field.CodeDirichlet
			press.BC.RC1[f] = field.Set(opts.Phys.P0)
		}
		if energy != nil && energy.BC.Icodcl[f] == field.CodeUndefined {
			energy.BC.Icodcl[f] = field.CodeNeumann
			energy.BC.RC3[f] = field.Set(0)
		}
	}
	return nil
}

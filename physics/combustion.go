package physics

import (
	"fmt"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
)

// InletKind distinguishes the streams of a diffusion-flame setup.
type InletKind int

const (
	InletOxidizer InletKind = iota
	InletFuel
)

// CombustionInlet fixes the combustion scalars of one boundary group.
type CombustionInlet struct {
	Faces       []int
	Kind        InletKind
	Temperature float64
}

/*
	Gas combustion inlets (diffusion flame): the mixture fraction is 1 on
	fuel streams and 0 on oxidizer streams, its variance enters at zero,
	and the enthalpy follows the stream temperature through the registered
	conversion. Coal and fuel-oil variants share the mixture-fraction
	handling and add their own particle-class scalars through
	WaterScalars-style extensions on top of this hook.
*/

type Combustion struct {
	Inlets []CombustionInlet

	// MixtureFraction and its variance; default names used when empty.
	MixtureFraction string
	Variance        string
}

func (Combustion) Name() string     { return "gas_combustion" }
func (Combustion) RunsAtInit() bool { return true }

func (cb Combustion) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	fm := cb.MixtureFraction
	if fm == "" {
		fm = "mixture_fraction"
	}
	fv := cb.Variance
	if fv == "" {
		fv = "mixture_fraction_variance"
	}
	if !s.Reg.Has(fm) {
		return fmt.Errorf("mixture fraction field %q not defined", fm)
	}

	for _, in := range cb.Inlets {
		z := 0.0
		if in.Kind == InletFuel {
			z = 1.0
		}
		for _, f := range in.Faces {
			setIfUndefined(s, fm, f, z)
			setIfUndefined(s, fv, f, 0)
			if s.Opts.Thermal == bc.ThermalEnthalpy && s.Opts.TempToEnthalpy != nil {
				setIfUndefined(s, field.Enthalpy, f,
					s.Opts.TempToEnthalpy(f, in.Temperature))
			}
		}
	}
	return nil
}

package setup

import (
	"fmt"
	"strings"

	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/physics"
	"github.com/notargets/gofvm/timestep"
)

/*
	Case assembly: one call turns the parsed parameters into the mesh, the
	field registry in translation order, the BC state and the time-step
	controller. The returned collector applies the case's boundary groups
	at the top of every iteration.
*/

// Case is the assembled computation.
type Case struct {
	Params     *CaseParameters
	Grid       *mesh.BoxGrid
	Reg        *field.Registry
	State      *bc.State
	Controller *timestep.Controller

	// Collect applies the case boundary specification; passed to
	// State.SetCoeffs every iteration.
	Collect func(*bc.State)
}

func Build(cp *CaseParameters, procLimit int) (cs *Case, err error) {
	if cp.Grid == nil {
		return nil, fmt.Errorf("case %q: no grid specification", cp.Title)
	}
	grid := mesh.NewBoxGrid(cp.Grid.Nx, cp.Grid.Ny, cp.Grid.Nz,
		cp.Grid.Lx, cp.Grid.Ly, cp.Grid.Lz)
	m := grid.Mesh

	turb, err := parseTurbulence(cp.Turbulence)
	if err != nil {
		return nil, err
	}
	thermal, err := parseThermal(cp.Thermal)
	if err != nil {
		return nil, err
	}

	reg := buildRegistry(m, cp, turb, thermal)

	opts := &bc.Options{
		Turb:      turb,
		Thermal:   thermal,
		ALE:       parseALE(cp.ALE),
		WallFn:    parseWallFn(cp.WallFn),
		Compress:  cp.Compress,
		VOF:       cp.VOF,
		Roughness: cp.Roughness,
		Phys: bc.PhysicalConstants{
			Ro0:     cp.Ro0,
			Viscl0:  cp.Viscl0,
			Cp0:     cp.Cp0,
			P0:      cp.P0,
			T0:      cp.T0,
			Gravity: cp.Gravity,
			Gamma:   cp.Gamma,
		},
	}
	state := bc.NewState(m, reg, opts, procLimit)
	registerHooks(state, cp, opts)

	ctrl, err := timestep.NewController(m, reg, state.Ctx, timestepParams(cp))
	if err != nil {
		return nil, err
	}

	// Seed the properties with the reference state
	dt := reg.MustGet(field.Dt).Val()
	for i := range dt {
		dt[i] = cp.DtRef
	}
	dens := reg.MustGet(field.Density).Val()
	visc := reg.MustGet("molecular_viscosity").Val()
	for i := range dens {
		dens[i] = opts.Phys.Ro0
		visc[i] = opts.Phys.Viscl0
	}

	cs = &Case{
		Params:     cp,
		Grid:       grid,
		Reg:        reg,
		State:      state,
		Controller: ctrl,
		Collect:    buildCollector(grid, cp),
	}
	return cs, nil
}

// registerHooks attaches the model hooks the case enables, in the
// contractual order. Models whose data cannot come from the case file
// alone (meteo profiles, cooling-tower streams, combustion inlets,
// condensation correlations) are registered by the host application on
// cs.State between Build and Run; the rotor/stator hook is always
// present and activates once the host supplies the rotor map.
func registerHooks(state *bc.State, cp *CaseParameters, opts *bc.Options) {
	if opts.Compress {
		state.RegisterHook(physics.Compressible{})
	}
	if opts.ALE != bc.ALENone {
		state.RegisterHook(&physics.ALE{})
	}
	if cp.Radiative {
		state.RegisterHook(physics.Radiative{})
	}
	state.RegisterHook(physics.RotorStator{})
}

// buildRegistry creates the solved variables in translation order, then
// the property fields.
func buildRegistry(m *mesh.Mesh, cp *CaseParameters, turb bc.TurbulenceModel,
	thermal bc.ThermalVariable) *field.Registry {
	reg := field.NewRegistry(m.NCellsExt)

	reg.CreateSolved(field.Velocity, 3, 2)
	reg.CreateSolved(field.Pressure, 1, 2)
	if cp.VOF {
		reg.CreateSolved(field.VoidFraction, 1, 2)
	}
	switch turb {
	case bc.TurbKEpsilon:
		reg.CreateSolved(field.K, 1, 2)
		reg.CreateSolved(field.Epsilon, 1, 2)
	case bc.TurbKOmega:
		reg.CreateSolved(field.K, 1, 2)
		reg.CreateSolved(field.Omega, 1, 2)
	case bc.TurbRijEpsilon:
		reg.CreateSolved(field.Rij, 6, 2)
		reg.CreateSolved(field.Epsilon, 1, 2)
	case bc.TurbRijEBRSM:
		reg.CreateSolved(field.Rij, 6, 2)
		reg.CreateSolved(field.Epsilon, 1, 2)
		reg.CreateSolved(field.Alpha, 1, 2)
	case bc.TurbV2F, bc.TurbV2FBL:
		reg.CreateSolved(field.K, 1, 2)
		reg.CreateSolved(field.Epsilon, 1, 2)
		reg.CreateSolved(field.Phi, 1, 2)
		if turb == bc.TurbV2F {
			reg.CreateSolved(field.FBar, 1, 2)
		} else {
			reg.CreateSolved(field.Alpha, 1, 2)
		}
	case bc.TurbSpalartAllmaras:
		reg.CreateSolved(field.NuTilde, 1, 2)
	}

	switch thermal {
	case bc.ThermalTemperature:
		reg.CreateSolved(field.Temperature, 1, 2)
	case bc.ThermalEnthalpy, bc.ThermalTotalEnergy:
		reg.CreateSolved(field.Enthalpy, 1, 2)
	}

	for _, sc := range cp.Scalars {
		f := reg.CreateSolved(sc.Name, 1, 2)
		if sc.TurbSchmidt > 0 {
			f.SetRealKey("turbulent_schmidt", sc.TurbSchmidt)
		}
		if sc.VarianceOf != "" {
			f.SetIntKey(field.KeyVarianceOf, reg.IDOf(sc.VarianceOf))
		}
		if sc.IsTemperature {
			f.SetIntKey(field.KeyIsTemperature, 1)
		}
	}

	if parseALE(cp.ALE) != bc.ALENone {
		reg.CreateSolved(field.MeshVelocity, 3, 2)
		reg.Create(field.MeshDisplacement, 3, 2)
	}

	// Properties: dt keeps three layers for the restart of variable-step
	// runs, density keeps its history for the second-order mass terms
	reg.Create(field.Dt, 1, 3)
	reg.Create(field.Density, 1, 3)
	reg.Create("molecular_viscosity", 1, 1)
	reg.Create("turbulent_viscosity", 1, 1)

	reg.AllocateBCs(m.NBFaces)
	return reg
}

// buildCollector binds the case boundary groups to a per-iteration
// collect function: face types first, then the per-variable values.
func buildCollector(grid *mesh.BoxGrid, cp *CaseParameters) func(*bc.State) {
	types := make(map[string]bc.FaceType, len(cp.BCs))
	for name, g := range cp.BCs {
		types[name] = bc.ParseFaceType(g.Type)
	}
	return func(s *bc.State) {
		s.ApplyGroupTypes(grid.Groups, types)
		for name, g := range cp.BCs {
			faces := grid.Groups[name]
			for varName, settings := range g.Values {
				fl, err := s.Reg.ByName(varName)
				if err != nil || fl.BC == nil {
					s.Errs.Collect("BC group %q: unknown variable %q", name, varName)
					continue
				}
				applyGroupValues(fl, faces, settings)
			}
		}
	}
}

// applyGroupValues writes one variable's settings on a face group. The
// recognized keys are Value (Dirichlet), Flux (Neumann), Exchange
// (external coefficient) and the per-component forms ValueX/Y/Z.
func applyGroupValues(fl *field.Field, faces []int, settings map[string]float64) {
	comp := map[string]int{"X": 0, "Y": 1, "Z": 2}
	for _, f := range faces {
		for key, v := range settings {
			switch {
			case key == "Value":
				fl.BC.Icodcl[f] = field.CodeDirichlet
				for d := 0; d < fl.Dim; d++ {
					fl.BC.RC1[f*fl.Dim+d] = field.Set(v)
				}
			case key == "Flux":
				fl.BC.Icodcl[f] = field.CodeNeumann
				for d := 0; d < fl.Dim; d++ {
					fl.BC.RC3[f*fl.Dim+d] = field.Set(v)
				}
			case key == "Exchange":
				for d := 0; d < fl.Dim; d++ {
					fl.BC.RC2[f*fl.Dim+d] = field.Set(v)
				}
			case strings.HasPrefix(key, "Value") && len(key) == 6:
				if d, ok := comp[key[5:]]; ok && d < fl.Dim {
					fl.BC.Icodcl[f] = field.CodeDirichlet
					fl.BC.RC1[f*fl.Dim+d] = field.Set(v)
				}
			}
		}
	}
}

func parseTurbulence(s string) (bc.TurbulenceModel, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return bc.TurbNone, nil
	case "k-epsilon":
		return bc.TurbKEpsilon, nil
	case "k-omega":
		return bc.TurbKOmega, nil
	case "rij-epsilon":
		return bc.TurbRijEpsilon, nil
	case "rij-ebrsm":
		return bc.TurbRijEBRSM, nil
	case "v2f":
		return bc.TurbV2F, nil
	case "v2f-bl":
		return bc.TurbV2FBL, nil
	case "spalart-allmaras":
		return bc.TurbSpalartAllmaras, nil
	case "les":
		return bc.TurbLES, nil
	}
	return 0, fmt.Errorf("unknown turbulence model %q", s)
}

func parseThermal(s string) (bc.ThermalVariable, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return bc.ThermalNone, nil
	case "temperature":
		return bc.ThermalTemperature, nil
	case "enthalpy":
		return bc.ThermalEnthalpy, nil
	case "total-energy":
		return bc.ThermalTotalEnergy, nil
	}
	return 0, fmt.Errorf("unknown thermal variable %q", s)
}

func parseALE(s string) bc.ALEMode {
	switch strings.ToLower(s) {
	case "legacy":
		return bc.ALELegacy
	case "cdo":
		return bc.ALECDO
	}
	return bc.ALENone
}

func parseWallFn(s string) bc.WallFunction {
	switch strings.ToLower(s) {
	case "two-scale":
		return bc.WallFnTwoScale
	case "rough":
		return bc.WallFnRough
	case "van-driest":
		return bc.WallFnVanDriest
	}
	return bc.WallFnLogLaw
}

func timestepParams(cp *CaseParameters) timestep.Params {
	p := timestep.DefaultParams()
	switch strings.ToLower(cp.TimeStepping) {
	case "uniform":
		p.Mode = timestep.ModeUniform
	case "local":
		p.Mode = timestep.ModeLocal
	case "steady":
		p.Mode = timestep.ModeSteady
	}
	if cp.DtRef > 0 {
		p.DtRef = cp.DtRef
	}
	p.DtMin = cp.DtMin
	p.DtMax = cp.DtMax
	if cp.CourantMax > 0 {
		p.CourantMax = cp.CourantMax
	}
	if cp.FourierMax > 0 {
		p.FourierMax = cp.FourierMax
	}
	if cp.CFLMassMax > 0 {
		p.CFLMassMax = cp.CFLMassMax
	}
	p.VOF = cp.VOF
	if cp.VarRdt > 0 {
		p.VarRdt = cp.VarRdt
	}
	if cp.RelaxV > 0 {
		p.RelaxV = cp.RelaxV
	}
	p.ThermalStratLimit = cp.StratLimit
	p.Gravity = cp.Gravity
	if cp.Ro0 > 0 {
		p.Ro0 = cp.Ro0
	}
	return p
}

package setup

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title      string  `json:"Title"`
	Turbulence string  `json:"Turbulence"` // none, k-epsilon, k-omega, rij-epsilon, rij-ebrsm, v2f, spalart-allmaras, les
	Thermal    string  `json:"Thermal"`    // none, temperature, enthalpy, total-energy
	WallFn     string  `json:"WallFunction"`
	Compress   bool    `json:"Compressible"`
	VOF        bool    `json:"VOF"`
	ALE        string  `json:"ALE"` // none, legacy, cdo
	Radiative  bool    `json:"RadiativeTransfer"`
	Roughness  float64 `json:"Roughness"`

	Ro0     float64    `json:"Rho0"`
	Viscl0  float64    `json:"Viscosity0"`
	Cp0     float64    `json:"Cp0"`
	P0      float64    `json:"P0"`
	T0      float64    `json:"T0"`
	Gravity [3]float64 `json:"Gravity"`
	Gamma   float64    `json:"Gamma"`

	// Time stepping
	TimeStepping  string  `json:"TimeStepping"` // constant, uniform, local, steady
	DtRef         float64 `json:"DtRef"`
	DtMin         float64 `json:"DtMin"`
	DtMax         float64 `json:"DtMax"`
	CourantMax    float64 `json:"CourantMax"`
	FourierMax    float64 `json:"FourierMax"`
	CFLMassMax    float64 `json:"CFLMassMax"`
	VarRdt        float64 `json:"DtMaxIncrease"`
	StratLimit    bool    `json:"ThermalStratLimit"`
	RelaxV        float64 `json:"SteadyRelaxation"`
	MaxIterations int     `json:"MaxIterations"`

	// Boundary groups: first key is the group name, second the variable,
	// then per-variable settings (type plus values).
	BCs map[string]BCGroup `json:"BCs"`

	// Scalars transported in addition to the model variables.
	Scalars []ScalarSpec `json:"Scalars"`

	// Box-grid generation for built-in cases.
	Grid *GridSpec `json:"Grid"`
}

// BCGroup is the case specification of one named boundary group.
type BCGroup struct {
	Type   string                        `json:"Type"` // inlet, outlet, wall, rough-wall, symmetry, free-outlet
	Values map[string]map[string]float64 `json:"Values"`
}

// ScalarSpec declares one transported scalar of the case.
type ScalarSpec struct {
	Name          string  `json:"Name"`
	Diffusivity   float64 `json:"Diffusivity"`
	TurbSchmidt   float64 `json:"TurbulentSchmidt"`
	VarianceOf    string  `json:"VarianceOf"`
	IsTemperature bool    `json:"IsTemperature"`
}

// GridSpec sizes the built-in box grid.
type GridSpec struct {
	Nx int     `json:"Nx"`
	Ny int     `json:"Ny"`
	Nz int     `json:"Nz"`
	Lx float64 `json:"Lx"`
	Ly float64 `json:"Ly"`
	Lz float64 `json:"Lz"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, cp); err != nil {
		return err
	}
	return cp.validate()
}

func (cp *CaseParameters) validate() error {
	if cp.DtRef <= 0 && cp.TimeStepping != "steady" {
		return fmt.Errorf("case %q: DtRef must be positive", cp.Title)
	}
	if cp.DtMin > 0 && cp.DtMax > 0 && cp.DtMin > cp.DtMax {
		return fmt.Errorf("case %q: DtMin %g exceeds DtMax %g", cp.Title, cp.DtMin, cp.DtMax)
	}
	for i, sc := range cp.Scalars {
		if sc.Name == "" {
			return fmt.Errorf("case %q: scalar %d has no name", cp.Title, i)
		}
	}
	return nil
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t\t= Turbulence\n", cp.Turbulence)
	fmt.Printf("[%s]\t\t= Thermal\n", cp.Thermal)
	fmt.Printf("[%s]\t\t= TimeStepping\n", cp.TimeStepping)
	fmt.Printf("%8.5f\t\t= DtRef\n", cp.DtRef)
	fmt.Printf("%8.5f\t\t= CourantMax\n", cp.CourantMax)
	fmt.Printf("%8.5f\t\t= FourierMax\n", cp.FourierMax)
	keys := make([]string, 0, len(cp.BCs))
	for k := range cp.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, cp.BCs[key])
	}
}

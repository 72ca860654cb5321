package bc

import (
	"github.com/notargets/gofvm/errorh"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

type TurbulenceModel int

const (
	TurbNone TurbulenceModel = iota
	TurbKEpsilon
	TurbKOmega // SST
	TurbRijEpsilon
	TurbRijEBRSM // Rij + epsilon + alpha
	TurbV2F      // v2-f phi/f_bar
	TurbV2FBL    // v2-f BL phi/alpha
	TurbSpalartAllmaras
	TurbLES
)

type ThermalVariable int

const (
	ThermalNone ThermalVariable = iota
	ThermalTemperature
	ThermalEnthalpy
	ThermalTotalEnergy
)

type ALEMode int

const (
	ALENone ALEMode = iota
	ALELegacy
	ALECDO
)

type WallFunction int

const (
	WallFnLogLaw WallFunction = iota
	WallFnTwoScale
	WallFnRough
	WallFnVanDriest
)

// Phase distinguishes the init call of the BC pipeline (codes defined,
// values not yet final) from the per-iteration call.
type Phase int

const (
	PhaseInit Phase = iota
	PhasePerIteration
)

// ModelHook is the uniform "enrich BCs for this model" entry point each
// active physical model registers. Hooks run in a fixed order before the
// translation loop and may adjust face types and per-variable
// specifications for their own variables.
type ModelHook interface {
	Name() string
	// RunsAtInit reports whether the hook participates in init calls
	// (those that define new codes rather than recompute values).
	RunsAtInit() bool
	ConfigureBCs(s *State, phase Phase) error
}

// PhysicalConstants carries the reference fluid properties read by the
// wall law and the time-step controller.
type PhysicalConstants struct {
	Ro0     float64    // reference density
	Viscl0  float64    // reference molecular dynamic viscosity
	Cp0     float64    // reference specific heat
	P0, T0  float64    // reference pressure and temperature
	Gravity [3]float64 // gravity vector
	Gamma   float64    // perfect-gas ratio (compressible)
}

// Options gathers the model switches of the computation.
type Options struct {
	Turb      TurbulenceModel
	Thermal   ThermalVariable
	ALE       ALEMode
	WallFn    WallFunction
	Compress  bool
	VOF       bool
	Roughness float64 // aerodynamic roughness for rough walls

	Phys PhysicalConstants

	// Registered temperature <-> enthalpy conversion, required when the
	// thermal variable is enthalpy and users impose wall temperatures.
	TempToEnthalpy func(face int, temp float64) float64
	EnthalpyToTemp func(face int, h float64) float64

	// User extension points; nil defaults to a no-op.
	UserBoundaryConditions    func(s *State)
	UserBoundaryConditionsALE func(s *State)

	// Turbomachinery: rotation number per cell (0 = stator) and the
	// solid-body rotation evaluator. TransientRotor selects the
	// prediction/correction backup-coefficient path.
	CellRotorNum   []int
	RotorVelocity  func(rotor int, cog [3]float64) [3]float64
	TransientRotor bool
}

// State is the dispatch context of the BC core: the mesh view, the field
// registry, the per-face classification, and the closure outputs shared
// between the pipeline stages of one outer iteration. It is mutated only
// by the orchestrator between parallel regions.
type State struct {
	Mesh *mesh.Mesh
	Reg  *field.Registry
	Ctx  *utils.DispatchContext
	Opts *Options
	Errs *errorh.Collector

	FaceType []FaceType
	Isympa   []int // 0 on symmetry/wall faces: mass-flux correction off
	Isostd   []int // 1 on standard-outlet faces
	RefFace  int   // designated reference outlet face, -1 when none

	// Wall-law closure outputs (per boundary face)
	UStar, Yplus  []float64
	Tplus, Tstar  []float64
	UndampedVisct []float64 // pre-Van-Driest turbulent viscosity per cell

	// Post-stage accumulations
	Theipb, Hbord  []float64 // boundary thermal value and exchange coeff
	Bfconv, Bhconv []float64 // radiative convective flux and coefficient
	BStress        []float64 // wall stress, face*3

	// Rotor/stator transient backups (face*3 and face); infinite-valued
	// sentinels in fixed-rotor mode, consumers must guard with
	// utils.IsInfinite.
	CofTur, HflTur []float64

	// Wall temperatures saved when converting temperature-valued
	// specifications to enthalpy, read back by the boundary-temperature
	// update.
	WallTemp []float64

	hooks          []ModelHook
	iteration      int
	varianceWarned map[string]bool
}

func NewState(m *mesh.Mesh, reg *field.Registry, opts *Options, procLimit int) (s *State) {
	var (
		nbf = m.NBFaces
	)
	if opts.Phys.Ro0 == 0 {
		opts.Phys.Ro0 = 1.0
	}
	if opts.Phys.Viscl0 == 0 {
		opts.Phys.Viscl0 = 1.e-5
	}
	if opts.Phys.Cp0 == 0 {
		opts.Phys.Cp0 = 1000.
	}
	s = &State{
		Mesh:           m,
		Reg:            reg,
		Ctx:            utils.NewDispatchContext(procLimit, m.NCells),
		Opts:           opts,
		Errs:           errorh.NewCollector(),
		FaceType:       make([]FaceType, nbf),
		Isympa:         make([]int, nbf),
		Isostd:         make([]int, nbf),
		RefFace:        -1,
		UStar:          make([]float64, nbf),
		Yplus:          make([]float64, nbf),
		Tplus:          make([]float64, nbf),
		Tstar:          make([]float64, nbf),
		UndampedVisct:  make([]float64, m.NCellsExt),
		Theipb:         make([]float64, nbf),
		Hbord:          make([]float64, nbf),
		Bfconv:         make([]float64, nbf),
		Bhconv:         make([]float64, nbf),
		BStress:        make([]float64, nbf*3),
		CofTur:         make([]float64, nbf*3),
		HflTur:         make([]float64, nbf),
		WallTemp:       make([]float64, nbf),
		varianceWarned: make(map[string]bool),
	}
	for i := range s.CofTur {
		s.CofTur[i] = utils.RInfinite
	}
	for i := range s.HflTur {
		s.HflTur[i] = utils.RInfinite
	}
	return
}

// RegisterHook appends a model hook; the driver registers active models
// in the contractual order (atmospheric, cooling towers, combustion,
// coal, compressible, ALE, radiative transfer, rotor/stator).
func (s *State) RegisterHook(h ModelHook) {
	s.hooks = append(s.hooks, h)
}

// Hooks returns the registered model hooks in their run order.
func (s *State) Hooks() []ModelHook { return s.hooks }

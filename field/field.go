package field

import "fmt"

// Well-known solved-variable names. Physics and BC code look fields up by
// these keys; user scalars use free-form names.
const (
	Velocity         = "velocity"
	Pressure         = "pressure"
	VoidFraction     = "void_fraction"
	K                = "k"
	Epsilon          = "epsilon"
	Omega            = "omega"
	Rij              = "rij"
	Alpha            = "alpha"
	FBar             = "f_bar"
	Phi              = "phi"
	NuTilde          = "nu_tilde"
	MeshVelocity     = "mesh_velocity"
	MeshDisplacement = "mesh_displacement"
	Dt               = "dt"
	Density          = "density"
	Enthalpy         = "enthalpy"
	Temperature      = "temperature"
)

// Metadata keys, matching the integer key names of the original field
// registry.
const (
	KeyScalarID       = "scalar_id"
	KeyIsTemperature  = "is_temperature"
	KeyDiffusivityID  = "diffusivity_id"
	KeyTurbFluxModel  = "turbulent_flux_model"
	KeyParentField    = "parent_field_id"
	KeyBoundaryValue  = "boundary_value_id"
	KeyVarianceOf     = "first_moment_id"
	KeyCouplingEntity = "coupling_entity"
)

// Field is one solved or property variable: one or more time layers of
// cell values, equation parameters, a BC record, and metadata keys.
type Field struct {
	Name string
	Dim  int // 1, 3, 6 or 9

	vals [][]float64 // [layer][cell*Dim]; layer 0 is current

	EqParams *EquationParams
	BC       *BCCoeffs

	intKeys  map[string]int
	realKeys map[string]float64
}

func newField(name string, dim, nCellsExt, nLayers int) *Field {
	f := &Field{
		Name:     name,
		Dim:      dim,
		vals:     make([][]float64, nLayers),
		EqParams: DefaultEquationParams(),
		intKeys:  make(map[string]int),
		realKeys: make(map[string]float64),
	}
	for l := range f.vals {
		f.vals[l] = make([]float64, nCellsExt*dim)
	}
	return f
}

// Val returns the current-time cell values (length NCellsExt*Dim).
func (f *Field) Val() []float64 { return f.vals[0] }

// ValPrev returns the previous-time layer; it fails when the field keeps
// a single layer, matching the use_previous_t contract.
func (f *Field) ValPrev() ([]float64, error) {
	if len(f.vals) < 2 {
		return nil, fmt.Errorf("field %q: previous time value requested but only %d layer(s) allocated",
			f.Name, len(f.vals))
	}
	return f.vals[1], nil
}

// ValPrev2 returns the second-previous layer (density history).
func (f *Field) ValPrev2() ([]float64, error) {
	if len(f.vals) < 3 {
		return nil, fmt.Errorf("field %q: second-previous time value requested but only %d layer(s) allocated",
			f.Name, len(f.vals))
	}
	return f.vals[2], nil
}

func (f *Field) NTimeLayers() int { return len(f.vals) }

// Rotate shifts current values into previous layers at the start of a
// time step: layer n receives layer n-1, layer 0 keeps its data to be
// overwritten by the new solve.
func (f *Field) Rotate() {
	n := len(f.vals)
	if n < 2 {
		return
	}
	last := f.vals[n-1]
	for l := n - 1; l > 0; l-- {
		f.vals[l] = f.vals[l-1]
	}
	copy(last, f.vals[0])
	f.vals[0] = last
}

func (f *Field) SetIntKey(key string, v int)      { f.intKeys[key] = v }
func (f *Field) SetRealKey(key string, v float64) { f.realKeys[key] = v }

// IntKey returns the key value, or -1 when never set (the registry
// convention for "no associated field").
func (f *Field) IntKey(key string) int {
	if v, ok := f.intKeys[key]; ok {
		return v
	}
	return -1
}

func (f *Field) RealKey(key string) (float64, bool) {
	v, ok := f.realKeys[key]
	return v, ok
}

// AllocBC allocates the BC-coefficient record for the field's dimension.
// Symmetric tensors also receive the divergence pair Ad/Bd.
func (f *Field) AllocBC(nBFaces int) {
	f.BC = NewBCCoeffs(f.Dim, nBFaces, f.Dim == 6)
}

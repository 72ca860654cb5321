package field

import "fmt"

// Registry owns every field of the computation. The BC core and the
// time-step controller hold it by reference and look fields up by name;
// iteration order over solved variables is the creation order, which the
// driver arranges as velocity, pressure, void fraction, turbulence
// variables, scalars, then ALE variables.
type Registry struct {
	NCellsExt int
	fields    map[string]*Field
	order     []string
	solved    []string // subset of order: transported variables
}

func NewRegistry(nCellsExt int) *Registry {
	return &Registry{
		NCellsExt: nCellsExt,
		fields:    make(map[string]*Field),
	}
}

// Create adds a field with nLayers time layers. Creating a name twice is
// a programming error and panics, matching the original registry.
func (r *Registry) Create(name string, dim, nLayers int) *Field {
	if _, exists := r.fields[name]; exists {
		panic(fmt.Sprintf("field %q already defined", name))
	}
	f := newField(name, dim, r.NCellsExt, nLayers)
	r.fields[name] = f
	r.order = append(r.order, name)
	return f
}

// CreateSolved adds a transported variable: it joins the translation
// loop's ordered walk and gets a BC record when AllocateBCs runs.
func (r *Registry) CreateSolved(name string, dim, nLayers int) *Field {
	f := r.Create(name, dim, nLayers)
	r.solved = append(r.solved, name)
	return f
}

// ByName is the fallible lookup.
func (r *Registry) ByName(name string) (*Field, error) {
	f, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("field %q not defined", name)
	}
	return f, nil
}

// MustGet is the infallible lookup for well-known names known to be
// active; it panics on absence, which indicates a setup-ordering bug.
func (r *Registry) MustGet(name string) *Field {
	f, ok := r.fields[name]
	if !ok {
		panic(fmt.Sprintf("field %q requested before definition", name))
	}
	return f
}

// Has reports whether the name is defined (model activation tests).
func (r *Registry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Solved returns the transported variables in translation order.
func (r *Registry) Solved() []*Field {
	out := make([]*Field, 0, len(r.solved))
	for _, name := range r.solved {
		out = append(out, r.fields[name])
	}
	return out
}

// All returns every field in creation order.
func (r *Registry) All() []*Field {
	out := make([]*Field, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// AllocateBCs sizes every solved field's BC record for the mesh; called
// once per mesh connectivity change.
func (r *Registry) AllocateBCs(nBFaces int) {
	for _, f := range r.Solved() {
		f.AllocBC(nBFaces)
	}
}

// ResetBCs clears all per-face specifications at the top of an outer
// iteration.
func (r *Registry) ResetBCs() {
	for _, f := range r.Solved() {
		if f.BC != nil {
			f.BC.Reset()
		}
	}
}

// ByID resolves a field from an integer metadata key value, used by the
// diffusivity and parent-field indirections. IDs are creation indices.
func (r *Registry) ByID(id int) (*Field, error) {
	if id < 0 || id >= len(r.order) {
		return nil, fmt.Errorf("field id %d out of range", id)
	}
	return r.fields[r.order[id]], nil
}

// IDOf returns the creation index of a field.
func (r *Registry) IDOf(name string) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

package field

/*
	Boundary-condition specification and translated coefficients for one
	variable.

	The user-level specification is a per-face code plus up to three real
	values per component:
		RC1: Dirichlet value / reference value / affine offset
		RC2: external exchange coefficient / outlet Courant / affine slope
		RC3: imposed flux
	A value left undefined keeps its zero-value Opt; the translation layer
	applies the per-code default (zero flux, infinite exchange, wall
	velocity) where a component is undefined. Partially-defined vector
	values are meaningful: the rotor/stator wall update zero-defaults the
	unset components before shifting the normal part onto the rotation,
	so user-set tangential components survive.

	The translated outputs are the four coefficient arrays
		face value: phi_f = A + B*phi_I'
		diff flux:  q_f   = Af + Bf*phi_I'
	with B/Bf stored as full Dim x Dim blocks for vector and tensor
	variables. Symmetric-tensor variables additionally carry Ad/Bd for the
	divergence contribution to the momentum equation.
*/

// Code enumerates the user-level BC codes for one face of one variable.
type Code uint8

const (
	CodeUndefined        Code = iota
	CodeDirichlet             // imposed value, optional exchange coefficient
	CodeConvectiveOutlet      // value convected out at a face Courant number
	CodeNeumann               // imposed flux
	CodeSymmetry              // normal projected out
	CodeSmoothWall            // wall-law wall
	CodeRoughWall             // wall-law wall with roughness
	CodeAffine                // affine face value a + b*phi
	CodeDirichletTN           // Dirichlet tangential + Neumann normal
	CodeAffineConvND          // affine convection + Neumann diffusion
	CodeDirichletConvND       // Dirichlet convection + Neumann diffusion
	CodeGenSymmetry           // generalized symmetry / Marangoni
	CodeNeumannConvZD         // Neumann convection + zero diffusion
)

func (c Code) String() string {
	names := map[Code]string{
		CodeUndefined:        "Undefined",
		CodeDirichlet:        "Dirichlet",
		CodeConvectiveOutlet: "ConvectiveOutlet",
		CodeNeumann:          "Neumann",
		CodeSymmetry:         "Symmetry",
		CodeSmoothWall:       "SmoothWall",
		CodeRoughWall:        "RoughWall",
		CodeAffine:           "Affine",
		CodeDirichletTN:      "DirichletTangentNeumannNormal",
		CodeAffineConvND:     "AffineConvNeumannDiff",
		CodeDirichletConvND:  "DirichletConvNeumannDiff",
		CodeGenSymmetry:      "GeneralizedSymmetry",
		CodeNeumannConvZD:    "NeumannConvZeroDiff",
	}
	if s, ok := names[c]; ok {
		return s
	}
	return "Unknown"
}

// Opt is an explicitly-optional real value, replacing the historical
// "half of infinity" unset sentinel.
type Opt struct {
	Val     float64
	Defined bool
}

func Set(v float64) Opt { return Opt{Val: v, Defined: true} }

// Or returns the value when defined, def otherwise.
func (o Opt) Or(def float64) float64 {
	if o.Defined {
		return o.Val
	}
	return def
}

// BCCoeffs is the per-variable boundary record. Inputs (Icodcl, RC1..RC3,
// InTemperature) are reset every outer iteration and rewritten by user
// functions, the GUI layer and model hooks; outputs (A..Bd) are written by
// the translation loop and read by the linear-system assembly.
type BCCoeffs struct {
	Dim    int
	NFaces int

	Icodcl []Code // per face
	RC1    []Opt  // per face*Dim
	RC2    []Opt
	RC3    []Opt
	// InTemperature flags faces whose RC1 was given in temperature and
	// must be converted to the solved enthalpy before translation.
	InTemperature []bool

	A  []float64 // face*Dim
	B  []float64 // face*Dim*Dim (face for scalars)
	Af []float64
	Bf []float64
	Ad []float64 // symmetric tensors only
	Bd []float64

	// Cached face values for gradient/diffusive-flux reconstruction,
	// allocated lazily (see bc.FaceValues), invalidated when A..Bf are
	// overwritten.
	ValIP, ValF, ValFD        []float64
	ValIPLim, ValFLim, ValFD2 []float64
	CacheValid                bool
}

func NewBCCoeffs(dim, nBFaces int, withDivergence bool) (bcc *BCCoeffs) {
	bcc = &BCCoeffs{
		Dim:           dim,
		NFaces:        nBFaces,
		Icodcl:        make([]Code, nBFaces),
		RC1:           make([]Opt, nBFaces*dim),
		RC2:           make([]Opt, nBFaces*dim),
		RC3:           make([]Opt, nBFaces*dim),
		InTemperature: make([]bool, nBFaces),
		A:             make([]float64, nBFaces*dim),
		B:             make([]float64, nBFaces*dim*dim),
		Af:            make([]float64, nBFaces*dim),
		Bf:            make([]float64, nBFaces*dim*dim),
	}
	if withDivergence {
		bcc.Ad = make([]float64, nBFaces*dim)
		bcc.Bd = make([]float64, nBFaces*dim*dim)
	}
	return
}

// Reset clears the user-level specification to "unset" at the top of an
// outer iteration and invalidates the face-value cache. Translated
// coefficients are left in place: they are fully rewritten by the
// translation loop, and gradient calls between reset and translate reuse
// the previous iteration's coefficients by design of the outer loop.
func (bcc *BCCoeffs) Reset() {
	for f := range bcc.Icodcl {
		bcc.Icodcl[f] = CodeUndefined
		bcc.InTemperature[f] = false
	}
	for i := range bcc.RC1 {
		bcc.RC1[i] = Opt{}
		bcc.RC2[i] = Opt{}
		bcc.RC3[i] = Opt{}
	}
	bcc.CacheValid = false
}

// SetFace assigns a code and component values on one face; vector callers
// pass dim-sized slices, scalar callers one element.
func (bcc *BCCoeffs) SetFace(f int, code Code, rc1, rc2, rc3 []Opt) {
	bcc.Icodcl[f] = code
	for d := 0; d < bcc.Dim; d++ {
		if rc1 != nil {
			bcc.RC1[f*bcc.Dim+d] = rc1[d]
		}
		if rc2 != nil {
			bcc.RC2[f*bcc.Dim+d] = rc2[d]
		}
		if rc3 != nil {
			bcc.RC3[f*bcc.Dim+d] = rc3[d]
		}
	}
}

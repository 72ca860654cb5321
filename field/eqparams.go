package field

// GradientType selects the reconstruction kernel used when a cell
// gradient is requested for a field.
type GradientType int

const (
	GradientGreenGauss GradientType = iota
	GradientLSQ
	GradientGreenGaussLSQ
	GradientIterative
)

func (g GradientType) String() string {
	switch g {
	case GradientGreenGauss:
		return "GreenGauss"
	case GradientLSQ:
		return "LSQ"
	case GradientGreenGaussLSQ:
		return "GreenGaussLSQ"
	case GradientIterative:
		return "IterativeGreenGauss"
	}
	return "Unknown"
}

// DiffusionShape describes the shape of a field's diffusion tensor, which
// drives the form of the internal exchange coefficient hint.
type DiffusionShape int

const (
	DiffNone DiffusionShape = iota
	DiffIsotropic
	DiffOrthotropic
	DiffAnisoLeft
	DiffAnisoRight
	DiffAnisoFull
)

// EquationParams carries the per-variable numerical options read by the
// BC translation core and the time-step controller.
type EquationParams struct {
	Convection bool
	Diffusion  bool
	DiffShape  DiffusionShape

	NSweeps     int // reconstruction sweeps
	GradType    GradientType
	GradLimiter int     // <0 disables
	ClimGr      float64 // gradient limiter coefficient
	ClimGrB     float64 // boundary-specific limiter coefficient
	ClipCoeff   float64
	ThetaV      float64 // time-scheme weight
	RelaxV      float64 // steady-algorithm relaxation
	Verbosity   int

	CouplingID int // internal-coupling entity, -1 when uncoupled
}

// DefaultEquationParams matches a transported scalar with convection and
// isotropic diffusion, pure implicit time scheme.
func DefaultEquationParams() *EquationParams {
	return &EquationParams{
		Convection:  true,
		Diffusion:   true,
		DiffShape:   DiffIsotropic,
		NSweeps:     1,
		GradType:    GradientGreenGauss,
		GradLimiter: -1,
		ClimGr:      1.5,
		ClimGrB:     1.0,
		ThetaV:      1.0,
		RelaxV:      1.0,
		CouplingID:  -1,
	}
}

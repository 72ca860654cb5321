package timestep

import (
	"fmt"
	"math"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/logging"
	"github.com/notargets/gofvm/mesh"
	"github.com/notargets/gofvm/utils"
)

// Mode selects the time-stepping algorithm.
type Mode int

const (
	ModeConstant Mode = iota // fixed reference step
	ModeUniform              // adaptive, one step for the whole domain
	ModeLocal                // adaptive, per-cell steps
	ModeSteady               // pseudo-steps of the steady algorithm
)

func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "constant"
	case ModeUniform:
		return "uniform-adaptive"
	case ModeLocal:
		return "local-adaptive"
	case ModeSteady:
		return "steady"
	}
	return "unknown"
}

// Negotiator lets an external coupled application bound the shared time
// step; the smallest proposal wins on both sides.
type Negotiator interface {
	NegotiateDt(proposed float64) (float64, error)
}

// Params carries the controller options of the case.
type Params struct {
	Mode       Mode
	DtRef      float64
	DtMin      float64 // relative to DtRef when <= 0: 0.1*DtRef
	DtMax      float64 // relative to DtRef when <= 0: 1000*DtRef
	CourantMax float64 // max cell Courant number
	FourierMax float64 // max cell Fourier number
	CFLMassMax float64 // max volume-fraction CFL, replaces CourantMax under VOF
	VarRdt     float64 // max relative increase per step
	VOF        bool    // volume-of-fluid algorithm active

	// Buoyancy limit: cap dt by the stratification time scale.
	ThermalStratLimit bool
	Gravity           [3]float64
	Ro0               float64

	// Steady algorithm relaxation, per the momentum equation.
	RelaxV float64
}

// DefaultParams mirrors the reference-case defaults.
func DefaultParams() Params {
	return Params{
		Mode:       ModeConstant,
		DtRef:      0.1,
		CourantMax: 1.0,
		FourierMax: 10.0,
		CFLMassMax: 0.99,
		VarRdt:     0.1,
		Ro0:        1.0,
		RelaxV:     0.7,
	}
}

// Controller owns the dt field update. Clip counters accumulate across
// the run for the final report.
type Controller struct {
	m   *mesh.Mesh
	reg *field.Registry
	ctx *utils.DispatchContext
	p   Params

	negotiators []Negotiator

	NClipMin, NClipMax int64
}

func NewController(m *mesh.Mesh, reg *field.Registry, ctx *utils.DispatchContext, p Params) (c *Controller, err error) {
	if p.DtRef <= 0 {
		return nil, fmt.Errorf("reference time step must be positive, got %g", p.DtRef)
	}
	if p.DtMin <= 0 {
		p.DtMin = 0.1 * p.DtRef
	}
	if p.DtMax <= 0 {
		p.DtMax = 1000. * p.DtRef
	}
	if p.DtMin > p.DtMax {
		return nil, fmt.Errorf("dtmin %g exceeds dtmax %g", p.DtMin, p.DtMax)
	}
	if p.VarRdt <= 0 {
		p.VarRdt = 0.1
	}
	return &Controller{m: m, reg: reg, ctx: ctx, p: p}, nil
}

// RegisterNegotiator adds a coupled application to the uniform-step
// negotiation.
func (c *Controller) RegisterNegotiator(n Negotiator) {
	c.negotiators = append(c.negotiators, n)
}

/*
Advance updates the dt field for the next iteration from the current
mass fluxes and properties. The bounds are evaluated per cell:

	Courant   dt <= coumax * rho * vol / conv_diag
	Fourier   dt <= foumax * rho * vol / diff_diag
	CFL mass  dt <= cflmmx * rho * vol / conv_diag (replaces Courant under VOF)
	strat.    dt <= 1 / sqrt(|grad(rho)·g| / rho)  (when enabled)

then the step follows the bound with the progressive-increase rule
(at most a factor 1+varrdt per call, decreases immediate) and the
[dtmin, dtmax] clip. Uniform mode reduces to the global minimum and
negotiates it with coupled applications.
*/
func (c *Controller) Advance(massFluxI, massFluxB []float64) error {
	var (
		m   = c.m
		p   = c.p
		log = logging.Sub("timestep")
		dtf = c.reg.MustGet(field.Dt)
		dt  = dtf.Val()
	)
	if p.Mode == ModeConstant {
		for i := 0; i < m.NCells; i++ {
			dt[i] = p.DtRef
		}
		return nil
	}

	rho := c.cellArray(field.Density, p.Ro0)
	visc := c.viscosity()

	if p.Mode == ModeSteady {
		c.steadyPseudoStep(massFluxI, massFluxB, rho, visc, dt)
		return nil
	}

	conv := diagOf(buildConvection(m, massFluxI, massFluxB), m.NCells)
	diff := diagOf(buildDiffusion(m, visc), m.NCells)

	var strat []float64
	if p.ThermalStratLimit {
		strat = c.stratificationLimit(rho)
	}

	var (
		nPar    = c.ctx.ParallelDegree()
		minCnts = make([]int64, nPar)
		maxCnts = make([]int64, nPar)
	)
	c.ctx.ParallelFor(func(np, cmin, cmax int) {
		for i := cmin; i < cmax; i++ {
			rv := rho[i] * m.CellVol[i]
			lim := math.MaxFloat64
			if conv[i] > 0 {
				if p.VOF {
					lim = utils.MinF(lim, p.CFLMassMax*rv/conv[i])
				} else {
					lim = utils.MinF(lim, p.CourantMax*rv/conv[i])
				}
			}
			if diff[i] > 0 {
				lim = utils.MinF(lim, p.FourierMax*rv/diff[i])
			}
			if strat != nil {
				lim = utils.MinF(lim, strat[i])
			}

			next := lim
			if lim > dt[i] {
				next = utils.MinF(dt[i]*(1.0+p.VarRdt), lim)
			}
			if next < p.DtMin {
				next = p.DtMin
				minCnts[np]++
			}
			if next > p.DtMax {
				next = p.DtMax
				maxCnts[np]++
			}
			dt[i] = next
		}
	})
	var nMin, nMax int64
	for np := 0; np < nPar; np++ {
		nMin += minCnts[np]
		nMax += maxCnts[np]
	}
	c.NClipMin += nMin
	c.NClipMax += nMax

	if p.Mode == ModeUniform {
		dtmin := c.ctx.ReduceMin(func(np, cmin, cmax int) float64 {
			loc := math.MaxFloat64
			for i := cmin; i < cmax; i++ {
				loc = utils.MinF(loc, dt[i])
			}
			return loc
		})
		for _, n := range c.negotiators {
			agreed, err := n.NegotiateDt(dtmin)
			if err != nil {
				return fmt.Errorf("time-step negotiation: %w", err)
			}
			dtmin = utils.MinF(dtmin, agreed)
		}
		dtmin = utils.MaxF(dtmin, p.DtMin)
		for i := 0; i < m.NCells; i++ {
			dt[i] = dtmin
		}
	}

	if nMin+nMax > 0 {
		log.Infof("dt clipped on %d cells at dtmin, %d at dtmax", nMin, nMax)
	}
	return nil
}

// steadyPseudoStep writes the per-cell pseudo time step of the steady
// algorithm: the relaxed diagonal time scale of the transport operator.
func (c *Controller) steadyPseudoStep(massFluxI, massFluxB, rho, visc, dt []float64) {
	var (
		m      = c.m
		rsConv = rowSumAbs(buildConvection(m, massFluxI, massFluxB), m.NCells)
		rsDiff = rowSumAbs(buildDiffusion(m, visc), m.NCells)
	)
	c.ctx.ParallelFor(func(np, cmin, cmax int) {
		for i := cmin; i < cmax; i++ {
			row := utils.MaxF(rsConv[i]+rsDiff[i], utils.Epzero)
			dt[i] = c.p.RelaxV * rho[i] * m.CellVol[i] / row
		}
	})
}

// stratificationLimit returns per-cell dt caps from the local buoyancy
// frequency, computed with a Green-Gauss density gradient.
func (c *Controller) stratificationLimit(rho []float64) []float64 {
	var (
		m   = c.m
		g   = c.p.Gravity
		out = make([]float64, m.NCells)
	)
	grad := make([][3]float64, m.NCellsExt)
	for f := 0; f < m.NIFaces; f++ {
		i, j := m.IFaceCells[f][0], m.IFaceCells[f][1]
		rf := rho[i]
		if j < len(rho) {
			rf = 0.5 * (rho[i] + rho[j])
		}
		for d := 0; d < 3; d++ {
			ds := rf * m.IFaceSurf[f] * m.IFaceNormal[f][d]
			grad[i][d] += ds
			if j < m.NCells {
				grad[j][d] -= ds
			}
		}
	}
	for f := 0; f < m.NBFaces; f++ {
		cc := m.BFaceCells[f]
		for d := 0; d < 3; d++ {
			grad[cc][d] += rho[cc] * m.BFaceSurf[f] * m.BFaceNormal[f][d]
		}
	}
	for i := 0; i < m.NCells; i++ {
		for d := 0; d < 3; d++ {
			grad[i][d] /= m.CellVol[i]
		}
		n2 := math.Abs(utils.Dot3(grad[i], g)) / utils.MaxF(rho[i], utils.Epzero)
		if n2 > utils.Epzero {
			out[i] = 1.0 / math.Sqrt(n2)
		} else {
			out[i] = math.MaxFloat64
		}
	}
	return out
}

// cellArray returns the named property values, or a constant fallback.
func (c *Controller) cellArray(name string, def float64) []float64 {
	if c.reg.Has(name) {
		return c.reg.MustGet(name).Val()
	}
	out := make([]float64, c.m.NCellsExt)
	for i := range out {
		out[i] = def
	}
	return out
}

// viscosity returns the total (molecular plus turbulent) cell viscosity.
func (c *Controller) viscosity() []float64 {
	var (
		n   = c.m.NCellsExt
		out = make([]float64, n)
	)
	viscl := c.cellArray("molecular_viscosity", 1.e-5)
	copy(out, viscl)
	if c.reg.Has("turbulent_viscosity") {
		vt := c.reg.MustGet("turbulent_viscosity").Val()
		for i := 0; i < n; i++ {
			out[i] += vt[i]
		}
	}
	return out
}

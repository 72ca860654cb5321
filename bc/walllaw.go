package bc

import (
	"math"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

// Turbulence wall-law constants.
const (
	Kappa    = 0.42 // von Karman
	CstLog   = 5.2
	Cmu      = 0.09
	Csrij    = 0.22 // Daly-Harlow / GGDH
	APlusVD  = 26.0 // Van Driest damping constant
	Prt      = 0.9  // turbulent Prandtl number at the wall
	YplusLim = 10.88
)

var Cmu025 = math.Pow(Cmu, 0.25)

// wallClosure holds the per-face quantities the wall law produces for the
// translation loop.
type wallClosure struct {
	uk, ustar float64 // inner and friction velocities (two-scale)
	yplus     float64
	hflui     float64    // tangential momentum exchange coefficient
	wallVel   [3]float64 // wall velocity (moving/rotor walls)
	rough     bool
}

/*
WallLaw runs the wall-law closure for every smooth-wall and rough-wall
face: friction velocity from the I' velocity, y+/t+ scalings, Van
Driest damping of the wall-cell turbulent viscosity, and composition
of the dependent variables' codes and values.

The closure is a pure function of the reconstructed inputs: running it
twice on unchanged fields writes identical outputs.
*/
func (s *State) WallLaw(velIPB []float64) error {
	var (
		m    = s.Mesh
		opts = s.Opts
		vel  = s.Reg.MustGet(field.Velocity)
		nu   = opts.Phys.Viscl0 / opts.Phys.Ro0
	)

	var kvals []float64
	if s.Reg.Has(field.K) {
		kvals = s.Reg.MustGet(field.K).Val()
	}
	var visct []float64
	if s.Reg.Has("turbulent_viscosity") {
		visct = s.Reg.MustGet("turbulent_viscosity").Val()
	}

	for f := 0; f < m.NBFaces; f++ {
		ft := s.FaceType[f]
		if ft != FaceSmoothWall && ft != FaceRoughWall {
			continue
		}
		s.Isympa[f] = 0

		c := m.BFaceCells[f]
		n := m.BFaceNormal[f]
		d := utils.MaxF(m.BDist[f], 1.e-300)

		// Wall velocity: user-set Dirichlet components, zero otherwise
		var wv [3]float64
		for i := 0; i < 3; i++ {
			wv[i] = vel.BC.RC1[f*3+i].Or(0)
		}

		// Tangential relative velocity at I'
		var rel [3]float64
		for i := 0; i < 3; i++ {
			rel[i] = velIPB[f*3+i] - wv[i]
		}
		reln := utils.Dot3(rel, n)
		var ut [3]float64
		for i := 0; i < 3; i++ {
			ut[i] = rel[i] - reln*n[i]
		}
		utau := utils.MaxF(utils.Norm3(ut), 1.e-12)

		wc := wallClosure{wallVel: wv, rough: ft == FaceRoughWall}

		switch {
		case wc.rough:
			// Rough log law: u+ = log((y+z0)/z0)/kappa
			z0 := utils.MaxF(opts.Roughness, 1.e-10)
			uplus := math.Log((d+z0)/z0) / Kappa
			wc.ustar = utau / uplus
			wc.uk = wc.ustar
			wc.yplus = wc.ustar * d / nu
			wc.hflui = opts.Phys.Ro0 * wc.ustar / uplus

		case opts.WallFn == WallFnTwoScale && kvals != nil:
			// Two-scale: inner velocity from turbulent kinetic energy,
			// friction velocity from the log law written with uk
			wc.uk = Cmu025 * math.Sqrt(utils.MaxF(kvals[c], 0))
			wc.yplus = wc.uk * d / nu
			if wc.yplus > YplusLim {
				uplus := math.Log(wc.yplus)/Kappa + CstLog
				wc.ustar = utau / uplus
				wc.hflui = opts.Phys.Ro0 * wc.uk / uplus
			} else {
				// Viscous sublayer
				wc.ustar = math.Sqrt(utau * nu / d)
				wc.hflui = opts.Phys.Viscl0 / d
			}

		default:
			// One-scale iterative log law
			wc.ustar = solveLogLaw(utau, d, nu)
			wc.uk = wc.ustar
			wc.yplus = wc.ustar * d / nu
			if wc.yplus > YplusLim {
				wc.hflui = opts.Phys.Ro0 * wc.ustar * wc.ustar / utau
			} else {
				wc.hflui = opts.Phys.Viscl0 / d
			}
		}

		s.UStar[f] = wc.ustar
		s.Yplus[f] = wc.yplus

		// Thermal scalings (Jayatilleke correction)
		if opts.Thermal != ThermalNone {
			pr := opts.Phys.Viscl0 * opts.Phys.Cp0 // molecular Prandtl, lambda normalized to 1
			pfn := 9.24 * (math.Pow(pr/Prt, 0.75) - 1.0) *
				(1.0 + 0.28*math.Exp(-0.007*pr/Prt))
			uplus := utau / utils.MaxF(wc.ustar, 1.e-12)
			s.Tplus[f] = Prt*uplus + pfn
			s.Tstar[f] = 1.0 / utils.MaxF(opts.Phys.Ro0*opts.Phys.Cp0*wc.ustar, 1.e-12)
		}

		// Van Driest damping of the wall-cell turbulent viscosity,
		// keeping the pre-damped value so the wall-distance update can
		// undo it
		if opts.WallFn == WallFnVanDriest && visct != nil {
			if s.UndampedVisct[c] == 0 {
				s.UndampedVisct[c] = visct[c]
			}
			damp := 1.0 - math.Exp(-wc.yplus/APlusVD)
			visct[c] = s.UndampedVisct[c] * damp * damp
		}

		s.composeWallBCs(f, c, d, &wc)
	}
	return nil
}

// solveLogLaw iterates u* for the one-scale law u+ = log(y+)/kappa + C.
func solveLogLaw(utau, d, nu float64) float64 {
	ustar := math.Sqrt(utau * nu / d) // sublayer seed
	for iter := 0; iter < 20; iter++ {
		yplus := ustar * d / nu
		if yplus < YplusLim {
			return math.Sqrt(utau * nu / d)
		}
		uplus := math.Log(yplus)/Kappa + CstLog
		next := utau / uplus
		if math.Abs(next-ustar) < 1.e-10*utils.MaxF(ustar, 1.e-30) {
			return next
		}
		ustar = next
	}
	return ustar
}

// composeWallBCs writes the dependent variables' codes and values
// consistent with the wall law on face f.
func (s *State) composeWallBCs(f, c int, d float64, wc *wallClosure) {
	var (
		opts = s.Opts
		vel  = s.Reg.MustGet(field.Velocity)
		code = field.CodeSmoothWall
	)
	if wc.rough {
		code = field.CodeRoughWall
	}

	// Velocity keeps its wall code; the translation step reads the wall
	// exchange coefficient from RC2 (tangential Robin toward the wall
	// velocity) unless the user already set one.
	vel.BC.Icodcl[f] = code
	for i := 0; i < 3; i++ {
		ind := f*3 + i
		if !vel.BC.RC1[ind].Defined {
			vel.BC.RC1[ind] = field.Set(wc.wallVel[i])
		}
		if !vel.BC.RC2[ind].Defined {
			vel.BC.RC2[ind] = field.Set(wc.hflui)
		}
	}

	setScalar := func(name string, cd field.Code, pimp float64) {
		if !s.Reg.Has(name) {
			return
		}
		fl := s.Reg.MustGet(name)
		if fl.BC == nil || fl.BC.Icodcl[f] != field.CodeUndefined {
			return
		}
		fl.BC.Icodcl[f] = cd
		if cd == field.CodeDirichlet {
			fl.BC.RC1[f] = field.Set(pimp)
		} else {
			fl.BC.RC3[f] = field.Set(pimp)
		}
	}

	uk := wc.uk
	switch opts.Turb {
	case TurbKEpsilon:
		setScalar(field.K, field.CodeDirichlet, uk*uk/math.Sqrt(Cmu))
		setScalar(field.Epsilon, field.CodeDirichlet, uk*uk*uk/(Kappa*d))
	case TurbKOmega:
		setScalar(field.K, field.CodeDirichlet, uk*uk/math.Sqrt(Cmu))
		setScalar(field.Omega, field.CodeDirichlet, uk/(math.Sqrt(Cmu)*Kappa*d))
	case TurbRijEpsilon, TurbRijEBRSM:
		setScalar(field.Epsilon, field.CodeDirichlet, uk*uk*uk/(Kappa*d))
		setScalar(field.Alpha, field.CodeDirichlet, 0)
		if s.Reg.Has(field.Rij) {
			rij := s.Reg.MustGet(field.Rij)
			if rij.BC.Icodcl[f] == field.CodeUndefined {
				rij.BC.Icodcl[f] = code
				// Equilibrium wall values in the wall frame
				k := uk * uk / math.Sqrt(Cmu)
				diag := 2.0 / 3.0 * k
				for i := 0; i < 3; i++ {
					rij.BC.RC1[f*6+i] = field.Set(diag)
				}
				for i := 3; i < 6; i++ {
					rij.BC.RC1[f*6+i] = field.Set(0)
				}
			}
		}
	case TurbV2F, TurbV2FBL:
		setScalar(field.K, field.CodeDirichlet, 0)
		setScalar(field.Epsilon, field.CodeDirichlet, 0)
		setScalar(field.Phi, field.CodeDirichlet, 0)
		setScalar(field.FBar, field.CodeDirichlet, 0)
		setScalar(field.Alpha, field.CodeDirichlet, 0)
	case TurbSpalartAllmaras:
		setScalar(field.NuTilde, field.CodeDirichlet, 0)
	}

	// Transported scalars: a user-imposed wall value becomes a Robin
	// exchange through t+, otherwise the wall is adiabatic for them
	for _, fl := range s.Reg.Solved() {
		if fl.Dim != 1 || fl.BC == nil {
			continue
		}
		switch fl.Name {
		case field.Pressure, field.K, field.Epsilon, field.Omega,
			field.Phi, field.FBar, field.Alpha, field.NuTilde,
			field.VoidFraction:
			continue
		}
		if fl.BC.Icodcl[f] == field.CodeUndefined {
			if fl.BC.RC1[f].Defined {
				fl.BC.Icodcl[f] = field.CodeDirichlet
				if !fl.BC.RC2[f].Defined && s.Tplus[f] > 0 {
					hext := opts.Phys.Ro0 * opts.Phys.Cp0 * wc.ustar / s.Tplus[f]
					fl.BC.RC2[f] = field.Set(hext)
				}
			} else {
				fl.BC.Icodcl[f] = field.CodeNeumann
				fl.BC.RC3[f] = field.Set(0)
			}
		}
	}

	// Pressure sees a homogeneous Neumann at walls
	press := s.Reg.MustGet(field.Pressure)
	if press.BC.Icodcl[f] == field.CodeUndefined {
		press.BC.Icodcl[f] = field.CodeNeumann
		press.BC.RC3[f] = field.Set(0)
	}
}

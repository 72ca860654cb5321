package bc

import (
	"fmt"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

// Schmidt numbers for the turbulence variables' wall diffusion. The k-w
// model deliberately uses its "inlet" constants sigma_k2/sigma_w2
// everywhere, consistent with the upstream diffusion kernels.
const (
	SigmaK   = 1.0
	SigmaEps = 1.3
	SigmaK2  = 1.0
	SigmaW2  = 0.856
	SigmaNu  = 2.0 / 3.0 // Spalart-Allmaras
)

/*
Translation loop: for every solved variable, in the contractual order
(velocity, pressure, void fraction, turbulence variables, scalars,
then the legacy ALE mesh velocity), compute the face-appropriate
internal exchange coefficient and map each face's user-level code to
the coefficient primitives.

A non-finite coefficient or an undefined code after translation is an
invariant violation and aborts immediately with face and field
identification.
*/
func (s *State) Translate(velIPB []float64) error {
	// Temperature-valued specifications on the enthalpy field are
	// converted before any coefficient is produced
	if err := s.convertTemperatureBCs(); err != nil {
		return err
	}

	for _, fld := range s.orderedVariables() {
		if fld.BC == nil {
			continue
		}
		s.checkVariancePolicy(fld)
		var err error
		switch {
		case fld.Name == field.Velocity || fld.Name == field.MeshVelocity:
			err = s.translateVector(fld, velIPB)
		case fld.Dim == 3:
			err = s.translateVector(fld, nil)
		case fld.Dim == 6:
			err = s.translateTensor(fld)
		default:
			err = s.translateScalar(fld)
		}
		if err != nil {
			return err
		}
		fld.BC.CacheValid = false
	}
	return nil
}

// orderedVariables returns the solved fields in translation order. The
// registry's creation order already follows the contract; the ALE mesh
// velocity is moved last and only kept on the legacy path.
func (s *State) orderedVariables() (out []*field.Field) {
	var meshVel *field.Field
	for _, fld := range s.Reg.Solved() {
		if fld.Name == field.MeshVelocity {
			meshVel = fld
			continue
		}
		out = append(out, fld)
	}
	if meshVel != nil && s.Opts.ALE == ALELegacy {
		out = append(out, meshVel)
	}
	return
}

// convertTemperatureBCs converts faces flagged "value is in temperature"
// on the enthalpy field through the registered callback, saving the
// original temperature for the boundary-temperature update. Other thermal
// variables carry their flagged values unconverted.
func (s *State) convertTemperatureBCs() error {
	if s.Opts.Thermal != ThermalEnthalpy {
		return nil
	}
	h, err := s.Reg.ByName(field.Enthalpy)
	if err != nil || h.BC == nil {
		return nil
	}
	if s.Opts.TempToEnthalpy == nil {
		for f := 0; f < s.Mesh.NBFaces; f++ {
			if h.BC.InTemperature[f] {
				return fmt.Errorf("enthalpy BCs given in temperature but no conversion registered")
			}
		}
		return nil
	}
	for f := 0; f < s.Mesh.NBFaces; f++ {
		if !h.BC.InTemperature[f] {
			continue
		}
		t := h.BC.RC1[f].Or(0)
		s.WallTemp[f] = t
		h.BC.RC1[f] = field.Set(s.Opts.TempToEnthalpy(f, t))
		h.BC.InTemperature[f] = false
	}
	return nil
}

// checkVariancePolicy reports (once per variance) an attempt to give a
// variance its own diffusivity or turbulent Schmidt number; variances
// share their parent scalar's.
func (s *State) checkVariancePolicy(fld *field.Field) {
	parent := fld.IntKey(field.KeyVarianceOf)
	if parent < 0 || s.varianceWarned[fld.Name] {
		return
	}
	_, hasSigma := fld.RealKey("turbulent_schmidt")
	if fld.IntKey(field.KeyDiffusivityID) >= 0 || hasSigma {
		s.varianceWarned[fld.Name] = true
		s.Errs.Collect(
			"variance %q: diffusivity and turbulent Schmidt are inherited from its parent scalar and cannot be set",
			fld.Name)
	}
}

// scalarHint returns the isotropic internal exchange coefficient of a
// scalar variable on face f.
func (s *State) scalarHint(fld *field.Field, f int) float64 {
	var (
		m    = s.Mesh
		c    = m.BFaceCells[f]
		d    = utils.MaxF(m.BDist[f], 1.e-300)
		opts = s.Opts
	)
	viscl := s.cellProp("molecular_viscosity", c, opts.Phys.Viscl0)
	visct := s.cellProp("turbulent_viscosity", c, 0)

	switch fld.Name {
	case field.Pressure:
		return s.pressureHint(f)
	case field.K:
		if opts.Turb == TurbKOmega {
			return (viscl + visct/SigmaK2) / d
		}
		return (viscl + visct/SigmaK) / d
	case field.Epsilon:
		return (viscl + visct/SigmaEps) / d
	case field.Omega:
		return (viscl + visct/SigmaW2) / d
	case field.NuTilde:
		return (viscl + visct/SigmaNu) / d
	}

	// Transported scalar: molecular diffusivity field or reference, plus
	// the turbulent part over the (possibly inherited) Schmidt number
	ref := fld
	if parent := fld.IntKey(field.KeyVarianceOf); parent >= 0 {
		if p, err := s.Reg.ByID(parent); err == nil {
			ref = p
		}
	}
	diff := viscl
	if id := ref.IntKey(field.KeyDiffusivityID); id >= 0 {
		if df, err := s.Reg.ByID(id); err == nil {
			diff = df.Val()[c]
		}
	}
	sigma := 1.0
	if v, ok := ref.RealKey("turbulent_schmidt"); ok {
		sigma = v
	}
	return (diff + visct/sigma) / d
}

// pressureHint builds the pressure exchange coefficient from the
// time-step field: dt/d for isotropic diffusion, the diagonal tensor form
// for orthotropic, and the clamped full-anisotropic form otherwise. The
// 0.1 clamp matches the face-viscosity kernel.
func (s *State) pressureHint(f int) float64 {
	var (
		m     = s.Mesh
		c     = m.BFaceCells[f]
		d     = utils.MaxF(m.BDist[f], 1.e-300)
		n     = m.BFaceNormal[f]
		press = s.Reg.MustGet(field.Pressure)
	)
	switch press.EqParams.DiffShape {
	case field.DiffOrthotropic:
		dttens := s.Reg.MustGet("dttens").Val()
		var sum float64
		for i := 0; i < 3; i++ {
			sum += dttens[c*6+i] * n[i] * n[i]
		}
		return sum / d
	case field.DiffAnisoFull, field.DiffAnisoLeft, field.DiffAnisoRight:
		dttens := s.Reg.MustGet("dttens").Val()
		var kt [6]float64
		copy(kt[:], dttens[c*6:c*6+6])
		kn := utils.Sym33Vec3(kt, n)
		nkn := utils.Dot3(kn, kn)
		// distance vector I -> F
		dv := [3]float64{d * n[0], d * n[1], d * n[2]}
		den := utils.MaxF(utils.Dot3(kn, dv), 0.1*utils.Norm3(kn)*d)
		return nkn / den
	default:
		dt := s.Reg.MustGet(field.Dt).Val()
		return dt[c] / d
	}
}

// rijHint returns the Reynolds-stress exchange coefficient: the full
// anisotropic visten form under Daly-Harlow/GGDH, the scalar fallback
// otherwise. The boolean reports whether the tensor form was used.
func (s *State) rijHint(f int) (hscal float64, htens [6]float64, aniso bool) {
	var (
		m     = s.Mesh
		c     = m.BFaceCells[f]
		d     = utils.MaxF(m.BDist[f], 1.e-300)
		opts  = s.Opts
		viscl = s.cellProp("molecular_viscosity", c, opts.Phys.Viscl0)
		visct = s.cellProp("turbulent_viscosity", c, 0)
	)
	if s.Reg.Has("visten") {
		visten := s.Reg.MustGet("visten").Val()
		for i := 0; i < 6; i++ {
			htens[i] = visten[c*6+i] * Csrij / Cmu / d
		}
		for i := 0; i < 3; i++ {
			htens[i] += viscl / d
		}
		aniso = true
		return
	}
	hscal = (viscl + visct*Csrij/Cmu) / d
	return
}

func (s *State) cellProp(name string, c int, def float64) float64 {
	if s.Reg.Has(name) {
		return s.Reg.MustGet(name).Val()[c]
	}
	return def
}

func (s *State) translateScalar(fld *field.Field) error {
	var (
		m   = s.Mesh
		bcc = fld.BC
	)
	for f := 0; f < m.NBFaces; f++ {
		hint := s.scalarHint(fld, f)
		switch bcc.Icodcl[f] {
		case field.CodeDirichlet:
			SetDirichletScalar(bcc, f, bcc.RC1[f].Or(0), hint,
				bcc.RC2[f].Or(utils.RInfinite))
		case field.CodeNeumann:
			SetNeumannScalar(bcc, f, bcc.RC3[f].Or(0), hint)
		case field.CodeConvectiveOutlet:
			SetConvectiveOutletScalar(bcc, f, bcc.RC1[f].Or(0),
				bcc.RC2[f].Or(0), hint)
		case field.CodeAffine:
			SetAffineScalar(bcc, f, bcc.RC1[f].Or(0), bcc.RC2[f].Or(0), hint)
		case field.CodeAffineConvND:
			SetAffineConvNeumannDiffScalar(bcc, f, bcc.RC1[f].Or(0),
				bcc.RC2[f].Or(0), bcc.RC3[f].Or(0))
		case field.CodeDirichletConvND:
			SetDirichletConvNeumannDiffScalar(bcc, f, bcc.RC1[f].Or(0),
				bcc.RC3[f].Or(0))
		case field.CodeNeumannConvZD:
			SetNeumannConvZeroDiffScalar(bcc, f, bcc.RC3[f].Or(0), hint)
		case field.CodeSymmetry:
			SetNeumannScalar(bcc, f, 0, hint)
		case field.CodeSmoothWall, field.CodeRoughWall:
			if bcc.RC1[f].Defined {
				SetDirichletScalar(bcc, f, bcc.RC1[f].Or(0), hint,
					bcc.RC2[f].Or(utils.RInfinite))
			} else {
				SetNeumannScalar(bcc, f, bcc.RC3[f].Or(0), hint)
			}
		case field.CodeUndefined:
			return s.undefinedFace(fld, f)
		default:
			SetNeumannScalar(bcc, f, bcc.RC3[f].Or(0), hint)
		}
		if NonFinite(bcc, f) {
			return s.nonFiniteFace(fld, f)
		}
	}
	return nil
}

func (s *State) translateVector(fld *field.Field, ipb []float64) error {
	var (
		m   = s.Mesh
		bcc = fld.BC
	)
	for f := 0; f < m.NBFaces; f++ {
		var (
			c     = m.BFaceCells[f]
			d     = utils.MaxF(m.BDist[f], 1.e-300)
			n     = m.BFaceNormal[f]
			viscl = s.cellProp("molecular_viscosity", c, s.Opts.Phys.Viscl0)
			visct = s.cellProp("turbulent_viscosity", c, 0)
			hint  = (viscl + visct) / d
		)
		var rc1, rc3 [3]float64
		var hext [3]float64
		for i := 0; i < 3; i++ {
			rc1[i] = bcc.RC1[f*3+i].Or(0)
			rc3[i] = bcc.RC3[f*3+i].Or(0)
			hext[i] = bcc.RC2[f*3+i].Or(utils.RInfinite)
		}
		switch bcc.Icodcl[f] {
		case field.CodeDirichlet:
			SetDirichletVector(bcc, f, rc1, hext, hint)
		case field.CodeNeumann:
			SetNeumannVector(bcc, f, rc3, hint)
		case field.CodeConvectiveOutlet:
			SetConvectiveOutletVector(bcc, f, rc1, bcc.RC2[f*3].Or(0), hint)
		case field.CodeSymmetry:
			// Dirichlet of the face-normal velocity, zero tangential flux
			pn := utils.Dot3(rc1, n)
			pimpv := [3]float64{pn * n[0], pn * n[1], pn * n[2]}
			SetGeneralizedSymVector(bcc, f, pimpv, [3]float64{}, hint, n)
		case field.CodeGenSymmetry:
			SetGeneralizedSymVectorAniso(bcc, f, rc1, rc3,
				utils.Sym33Diag(hint), n)
		case field.CodeDirichletTN:
			SetGeneralizedDirichletVectorAniso(bcc, f, rc1, rc3,
				utils.Sym33Diag(hint), n)
		case field.CodeSmoothWall, field.CodeRoughWall:
			// Wall velocity imposed on the face (the normal component
			// included: no penetration), tangential diffusive exchange
			// at the wall-law coefficient, zero normal diffusive flux
			hflui := bcc.RC2[f*3].Or(hint)
			SetWallVelocityVector(bcc, f, rc1, hflui, n)
		case field.CodeUndefined:
			return s.undefinedFace(fld, f)
		default:
			SetNeumannVector(bcc, f, rc3, hint)
		}
		if NonFinite(bcc, f) {
			return s.nonFiniteFace(fld, f)
		}
	}
	return nil
}

func (s *State) translateTensor(fld *field.Field) error {
	var (
		m   = s.Mesh
		bcc = fld.BC
	)
	for f := 0; f < m.NBFaces; f++ {
		var (
			n = m.BFaceNormal[f]
		)
		hscal, htens, aniso := s.rijHint(f)
		if aniso {
			// Anisotropic wall diffusion enters through the divergence
			// kernels; the face translation keeps the scalar envelope of
			// the tensor for the exchange coefficient
			hscal = (htens[0] + htens[1] + htens[2]) / 3.0
		}
		var rc1, rc3 [6]float64
		var hext [6]float64
		for i := 0; i < 6; i++ {
			rc1[i] = bcc.RC1[f*6+i].Or(0)
			rc3[i] = bcc.RC3[f*6+i].Or(0)
			hext[i] = bcc.RC2[f*6+i].Or(utils.RInfinite)
		}
		switch bcc.Icodcl[f] {
		case field.CodeDirichlet, field.CodeSmoothWall, field.CodeRoughWall:
			SetDirichletTensor(bcc, f, rc1, hext, hscal)
		case field.CodeNeumann:
			SetNeumannTensor(bcc, f, rc3, hscal)
		case field.CodeSymmetry, field.CodeGenSymmetry:
			SetSymmetryTensor(bcc, f, hscal, n)
		case field.CodeUndefined:
			return s.undefinedFace(fld, f)
		default:
			SetNeumannTensor(bcc, f, rc3, hscal)
		}
		if NonFinite(bcc, f) {
			return s.nonFiniteFace(fld, f)
		}
	}
	return nil
}

func (s *State) undefinedFace(fld *field.Field, f int) error {
	return fmt.Errorf("face %d (type %s): no boundary condition set for field %q",
		f, s.FaceType[f], fld.Name)
}

func (s *State) nonFiniteFace(fld *field.Field, f int) error {
	return fmt.Errorf("face %d: non-finite boundary coefficient for field %q (code %s)",
		f, fld.Name, fld.BC.Icodcl[f])
}

package bc

import (
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/logging"
)

/*
	BC type classifier: a single pass across the boundary derives the
	physics-consistent face type from the velocity and pressure codes set
	by the user layer, the GUI and the coupling resets. The cross-variable
	consistency checks run separately, after the model hooks have filled
	their variables; inconsistencies are collected, never fatal there, and
	the error barrier is deferred to end-of-setup.
*/

// Classify derives FaceType for every face and designates the reference
// outlet face. Faces pre-typed by the setup layer (group assignment) keep
// their type unless the velocity code contradicts it.
func (s *State) Classify(phase Phase) {
	var (
		vel = s.Reg.MustGet(field.Velocity)
		nbf = s.Mesh.NBFaces
		vbc = vel.BC
	)
	for f := 0; f < nbf; f++ {
		t := s.FaceType[f]
		switch vbc.Icodcl[f] {
		case field.CodeDirichlet:
			if t == FaceUndefined || t == FaceInlet || t == FaceConvectiveInlet {
				if t == FaceUndefined {
					t = FaceInlet
				}
			}
		case field.CodeConvectiveOutlet:
			if t == FaceUndefined {
				t = FaceOutlet
			}
		case field.CodeNeumann:
			if t == FaceUndefined {
				t = FaceOutlet
			}
		case field.CodeSymmetry, field.CodeGenSymmetry:
			t = FaceSymmetry
		case field.CodeSmoothWall:
			t = FaceSmoothWall
		case field.CodeRoughWall:
			t = FaceRoughWall
		case field.CodeDirichletTN:
			if t == FaceUndefined {
				t = FaceFreeSurface
			}
		}
		s.FaceType[f] = t
	}

	// Standard-outlet marking and reference face designation: the first
	// outlet face becomes the pressure reference unless the setup already
	// designated one.
	for f := 0; f < nbf; f++ {
		if s.FaceType[f] == FaceOutlet || s.FaceType[f] == FaceFreeOutlet {
			s.Isostd[f] = 1
			if s.RefFace < 0 {
				s.RefFace = f
			}
		} else {
			s.Isostd[f] = 0
		}
	}
}

// checkConsistency runs the cross-variable checks of the second pass.
func (s *State) checkConsistency() {
	var (
		vel   = s.Reg.MustGet(field.Velocity)
		press = s.Reg.MustGet(field.Pressure)
		nbf   = s.Mesh.NBFaces
		nOut  int
	)
	for f := 0; f < nbf; f++ {
		vc, pc := vel.BC.Icodcl[f], press.BC.Icodcl[f]

		// A velocity Dirichlet face needs a pressure Neumann (or a
		// coupled outlet partner) for the pressure equation to close.
		if vc == field.CodeDirichlet && s.FaceType[f] != FaceCoupled {
			if pc != field.CodeNeumann && pc != field.CodeUndefined {
				s.Errs.Collect(
					"face %d: velocity Dirichlet with pressure code %s; expected Neumann",
					f, pc)
			}
		}

		// Dirichlet pressure on the designated reference face is an
		// invariant violation downstream; flag it here while recoverable.
		// Compressible outlets pin the pressure legitimately.
		if f == s.RefFace && pc == field.CodeDirichlet && !s.Opts.Compress {
			s.Errs.Collect(
				"face %d: Dirichlet pressure requested on the reference outlet face", f)
		}

		if s.Isostd[f] == 1 {
			nOut++
		}

		// ALE faces must carry a mesh-velocity BC.
		switch s.FaceType[f] {
		case FaceALEFixed, FaceALESliding, FaceALEImposedVelocity,
			FaceALEImposedDisplacement, FaceALEFreeSurface:
			if s.Opts.ALE == ALENone {
				s.Errs.Collect("face %d: ALE face type %s with ALE disabled",
					f, s.FaceType[f])
				continue
			}
			mv, err := s.Reg.ByName(field.MeshVelocity)
			if err != nil || mv.BC == nil || mv.BC.Icodcl[f] == field.CodeUndefined {
				s.Errs.Collect("face %d: ALE face type %s without a mesh-velocity BC",
					f, s.FaceType[f])
			}
		}
	}
	if nOut > 0 && s.RefFace < 0 {
		s.Errs.Collect("%d outlet faces but no reference face designated", nOut)
	}
	if n := s.Errs.Count(); n > 0 {
		logging.Sub("bc").Warnf("classifier found %d inconsistent faces (deferred to setup barrier)", n)
	}
}

// ApplyGroupTypes seeds the face classification from named boundary
// groups (case file), before user functions run.
func (s *State) ApplyGroupTypes(groups map[string][]int, types map[string]FaceType) {
	for name, faces := range groups {
		t, ok := types[name]
		if !ok {
			continue
		}
		for _, f := range faces {
			s.FaceType[f] = t
		}
	}
}

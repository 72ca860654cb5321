package bc

import (
	"fmt"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/logging"
)

/*
	Pipeline orchestrator. One call per outer iteration (plus one init
	call before the time loop):

		reset -> collect -> classify -> model hooks -> I' velocity ->
		wall law -> symmetry -> translate -> post

	Stage boundaries are the synchronization points: each stage sees the
	complete output of the previous one, and the collected consistency
	errors hit the barrier before any coefficient is produced.
*/

// SetCoeffs runs the whole boundary pipeline for the current iteration.
// collect, when non-nil, applies the case specification (group types and
// values) before the user functions.
func (s *State) SetCoeffs(phase Phase, collect func(*State)) error {
	var (
		m   = s.Mesh
		log = logging.Sub("bc")
	)
	s.iteration++
	log.Debugf("boundary pipeline, iteration %d", s.iteration)

	// Reset: specifications cleared, mass-flux correction re-armed
	s.Reg.ResetBCs()
	for f := 0; f < m.NBFaces; f++ {
		s.Isympa[f] = 1
	}

	// Collect: case file first, then the user extension points
	if collect != nil {
		collect(s)
	}
	if s.Opts.UserBoundaryConditions != nil {
		s.Opts.UserBoundaryConditions(s)
	}
	if s.Opts.ALE != ALENone && s.Opts.UserBoundaryConditionsALE != nil {
		s.Opts.UserBoundaryConditionsALE(s)
	}

	s.Classify(phase)

	if err := s.runHooks(phase); err != nil {
		return err
	}

	// Consistency is checked once the hooks have had their say: a hook
	// may legitimately supply the BCs of its own variables
	if phase == PhasePerIteration {
		s.checkConsistency()
	}

	// Setup barrier: every inconsistency collected so far is fatal here
	if err := s.Errs.Barrier(); err != nil {
		return fmt.Errorf("boundary condition setup: %w", err)
	}

	// Velocity at I', shared by the wall law, the translation of the
	// generalized conditions and the stress post-processing
	vel := s.Reg.MustGet(field.Velocity)
	velIPB, err := VectorIP(s, vel, false)
	if err != nil {
		return err
	}

	if err := s.WallLaw(velIPB); err != nil {
		return err
	}
	s.Symmetry()
	s.applyDefaults()

	if err := s.Translate(velIPB); err != nil {
		return err
	}

	if phase == PhasePerIteration {
		if err := s.Post(velIPB); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults gives every face/variable pair still undefined after the
// closures its fallback: homogeneous Neumann. Inlet velocity left unset
// would silently become a free boundary, so it is reported instead.
func (s *State) applyDefaults() {
	var (
		m = s.Mesh
	)
	for _, fl := range s.Reg.Solved() {
		if fl.BC == nil {
			continue
		}
		for f := 0; f < m.NBFaces; f++ {
			if fl.BC.Icodcl[f] != field.CodeUndefined {
				continue
			}
			if fl.Name == field.Velocity &&
				(s.FaceType[f] == FaceInlet || s.FaceType[f] == FaceConvectiveInlet) {
				s.Errs.Collect("face %d: inlet without an imposed velocity", f)
			}
			fl.BC.Icodcl[f] = field.CodeNeumann
			for d := 0; d < fl.Dim; d++ {
				fl.BC.RC3[f*fl.Dim+d] = field.Set(0)
			}
		}
	}
}

// runHooks dispatches the registered model hooks in registration order,
// restricted to init-capable hooks on init calls.
func (s *State) runHooks(phase Phase) error {
	for _, h := range s.hooks {
		if phase == PhaseInit && !h.RunsAtInit() {
			continue
		}
		if err := h.ConfigureBCs(s, phase); err != nil {
			return fmt.Errorf("model %s: %w", h.Name(), err)
		}
	}
	return nil
}

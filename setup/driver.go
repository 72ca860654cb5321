package setup

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/logging"
)

/*
	Outer iteration driver. The transport solves themselves live in the
	host application; this loop exercises the boundary pipeline and the
	time-step controller in their contractual order:

		rotate fields -> mass fluxes -> dt update -> boundary pipeline

	which is also the order the verification cases run in.
*/

// Run advances the case by maxIter outer iterations starting at startIter.
func Run(cs *Case, startIter, maxIter int) error {
	var (
		log = logging.Sub("driver")
	)
	if err := cs.State.SetCoeffs(bc.PhaseInit, cs.Collect); err != nil {
		return err
	}
	for it := startIter; it < maxIter; it++ {
		for _, fl := range cs.Reg.All() {
			fl.Rotate()
		}
		mfI, mfB := MassFluxes(cs)
		if err := cs.Controller.Advance(mfI, mfB); err != nil {
			return err
		}
		if err := cs.State.SetCoeffs(bc.PhasePerIteration, cs.Collect); err != nil {
			return err
		}
		if it%10 == 0 {
			log.Infof("iteration %d complete", it)
		}
	}
	return nil
}

// MassFluxes computes the face mass fluxes from the current velocity and
// density, arithmetic face means on interior faces and the boundary face
// value closure on the boundary.
func MassFluxes(cs *Case) (mfI, mfB []float64) {
	var (
		m    = cs.Grid.Mesh
		vel  = cs.Reg.MustGet(field.Velocity).Val()
		dens = cs.Reg.MustGet(field.Density).Val()
		ro0  = cs.State.Opts.Phys.Ro0
	)
	rhoOf := func(c int) float64 {
		if dens[c] > 0 {
			return dens[c]
		}
		return ro0
	}
	mfI = make([]float64, m.NIFaces)
	for f := 0; f < m.NIFaces; f++ {
		i, j := m.IFaceCells[f][0], m.IFaceCells[f][1]
		var un float64
		for d := 0; d < 3; d++ {
			un += 0.5 * (vel[i*3+d] + vel[j*3+d]) * m.IFaceNormal[f][d]
		}
		mfI[f] = 0.5 * (rhoOf(i) + rhoOf(j)) * un * m.IFaceSurf[f]
	}
	mfB = make([]float64, m.NBFaces)
	vbc := cs.Reg.MustGet(field.Velocity).BC
	for f := 0; f < m.NBFaces; f++ {
		c := m.BFaceCells[f]
		var un float64
		for d := 0; d < 3; d++ {
			uf := vbc.A[f*3+d]
			for e := 0; e < 3; e++ {
				uf += vbc.B[f*9+3*d+e] * vel[c*3+e]
			}
			un += uf * m.BFaceNormal[f][d]
		}
		mfB[f] = rhoOf(c) * un * m.BFaceSurf[f]
	}
	return
}

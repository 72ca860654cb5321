package physics

import (
	"github.com/notargets/gofvm/bc"
	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/utils"
)

/*
	Rotor/stator wall velocities: every wall or symmetry face whose cell
	belongs to a rotor follows the solid-body rotation in the face-normal
	direction. The update moves only the normal component toward the
	rotation velocity at the face center; user-set tangential values are
	kept and unset components default to zero, so a case can still pin,
	say, the axial component while the rotation supplies the normal part.

	In transient (sliding-mesh) mode the previous iteration's velocity
	flux coefficients are backed up before the override; the
	prediction/correction steps of the coupled solve read them back. In
	frozen-rotor mode the backups keep their infinite sentinels.
*/

type RotorStator struct{}

func (RotorStator) Name() string     { return "rotor_stator" }
func (RotorStator) RunsAtInit() bool { return false }

func (RotorStator) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	var (
		m    = s.Mesh
		opts = s.Opts
	)
	if opts.CellRotorNum == nil || opts.RotorVelocity == nil {
		return nil
	}
	vel := s.Reg.MustGet(field.Velocity)

	if opts.TransientRotor {
		backupWallFluxCoeffs(s, vel)
	}

	for f := 0; f < m.NBFaces; f++ {
		switch s.FaceType[f] {
		case bc.FaceSmoothWall, bc.FaceRoughWall, bc.FaceSymmetry:
		default:
			continue
		}
		c := m.BFaceCells[f]
		rotor := opts.CellRotorNum[c]
		if rotor == 0 {
			continue
		}
		wv := opts.RotorVelocity(rotor, m.BFaceCOG[f])
		n := m.BFaceNormal[f]
		var rc [3]float64
		for i := 0; i < 3; i++ {
			rc[i] = vel.BC.RC1[f*3+i].Or(0)
		}
		// Shift the normal component onto the rotation, keep tangential
		rcodsn := (wv[0]-rc[0])*n[0] + (wv[1]-rc[1])*n[1] + (wv[2]-rc[2])*n[2]
		for i := 0; i < 3; i++ {
			vel.BC.RC1[f*3+i] = field.Set(rc[i] + rcodsn*n[i])
		}
	}
	return nil
}

// backupWallFluxCoeffs saves the translated velocity flux coefficients of
// the previous iteration on rotor wall faces. First call (coefficients
// not yet produced) leaves the sentinels in place.
func backupWallFluxCoeffs(s *bc.State, vel *field.Field) {
	var (
		m   = s.Mesh
		vbc = vel.BC
	)
	for f := 0; f < m.NBFaces; f++ {
		c := m.BFaceCells[f]
		if s.Opts.CellRotorNum[c] == 0 {
			continue
		}
		if !utils.IsInfinite(s.HflTur[f]) || vbc.Bf[f*9] != 0 {
			for i := 0; i < 3; i++ {
				s.CofTur[f*3+i] = vbc.Af[f*3+i]
			}
			// Diagonal average stands in for the scalar exchange part
			s.HflTur[f] = (vbc.Bf[f*9] + vbc.Bf[f*9+4] + vbc.Bf[f*9+8]) / 3.0
		}
	}
}

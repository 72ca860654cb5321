package physics

import (
	"github.com/notargets/gofvm/bc"
)

/*
	Wall-condensation slot. The condensation source terms live in the mass
	and energy equations; at the boundary the model only adjusts the
	exchange coefficients of the condensing scalars on the registered wall
	faces, through a user-supplied closure (typically a Uchida or COPAIN
	correlation). With no closure registered the hook is inert.
*/

type WallCondensation struct {
	Faces   []int
	Closure func(s *bc.State, face int)
}

func (WallCondensation) Name() string     { return "wall_condensation" }
func (WallCondensation) RunsAtInit() bool { return false }

func (wc WallCondensation) ConfigureBCs(s *bc.State, phase bc.Phase) error {
	if wc.Closure == nil {
		return nil
	}
	for _, f := range wc.Faces {
		wc.Closure(s, f)
	}
	return nil
}

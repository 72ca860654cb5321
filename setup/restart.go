package setup

import (
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofvm/field"
	"github.com/notargets/gofvm/logging"
)

/*
	Restart: the auxiliary quantities a clean continuation needs beyond
	the solved variables themselves. The time-step field matters for
	adaptive runs (the progressive-increase rule would otherwise restart
	from dtref), the density history for the second-order mass terms, the
	mesh displacement for ALE geometry.
*/

// Checkpoint is the serialized auxiliary state.
type Checkpoint struct {
	Title     string  `yaml:"Title"`
	Iteration int     `yaml:"Iteration"`
	Time      float64 `yaml:"Time"`

	Dt           []float64   `yaml:"Dt"`
	Density      [][]float64 `yaml:"Density"` // time layers, current first
	Displacement []float64   `yaml:"MeshDisplacement,omitempty"`
}

// WriteCheckpoint captures the auxiliary state of the case.
func WriteCheckpoint(cs *Case, iteration int, tm float64, w io.Writer) error {
	ck := Checkpoint{
		Title:     cs.Params.Title,
		Iteration: iteration,
		Time:      tm,
	}
	dtf := cs.Reg.MustGet(field.Dt)
	ck.Dt = append([]float64(nil), dtf.Val()...)

	dens := cs.Reg.MustGet(field.Density)
	for l := 0; l < dens.NTimeLayers(); l++ {
		var vals []float64
		switch l {
		case 0:
			vals = dens.Val()
		case 1:
			vals, _ = dens.ValPrev()
		default:
			vals, _ = dens.ValPrev2()
		}
		if vals == nil {
			break
		}
		ck.Density = append(ck.Density, append([]float64(nil), vals...))
	}

	if cs.Reg.Has(field.MeshDisplacement) {
		disp := cs.Reg.MustGet(field.MeshDisplacement).Val()
		ck.Displacement = append([]float64(nil), disp...)
	}

	data, err := yaml.Marshal(&ck)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadCheckpoint restores the auxiliary state into an assembled case.
// Size mismatches (the mesh changed) fail; a missing dt array only warns
// and keeps the reference step, matching a restart from a constant-step
// run into an adaptive one.
func ReadCheckpoint(cs *Case, r io.Reader) (iteration int, tm float64, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, 0, err
	}
	var ck Checkpoint
	if err = yaml.Unmarshal(data, &ck); err != nil {
		return 0, 0, err
	}
	log := logging.Sub("restart")

	dtf := cs.Reg.MustGet(field.Dt)
	switch {
	case len(ck.Dt) == 0:
		log.Warnf("checkpoint has no time-step field, keeping dtref %g", cs.Params.DtRef)
	case len(ck.Dt) != len(dtf.Val()):
		return 0, 0, fmt.Errorf("checkpoint dt size %d, mesh has %d cells",
			len(ck.Dt), len(dtf.Val()))
	default:
		copy(dtf.Val(), ck.Dt)
	}

	dens := cs.Reg.MustGet(field.Density)
	for l, vals := range ck.Density {
		if l >= dens.NTimeLayers() {
			break
		}
		var dst []float64
		switch l {
		case 0:
			dst = dens.Val()
		case 1:
			dst, _ = dens.ValPrev()
		default:
			dst, _ = dens.ValPrev2()
		}
		if len(vals) != len(dst) {
			return 0, 0, fmt.Errorf("checkpoint density size %d, want %d", len(vals), len(dst))
		}
		copy(dst, vals)
	}

	if len(ck.Displacement) > 0 && cs.Reg.Has(field.MeshDisplacement) {
		disp := cs.Reg.MustGet(field.MeshDisplacement).Val()
		if len(ck.Displacement) != len(disp) {
			return 0, 0, fmt.Errorf("checkpoint displacement size %d, want %d",
				len(ck.Displacement), len(disp))
		}
		copy(disp, ck.Displacement)
	}
	return ck.Iteration, ck.Time, nil
}

// LoadCase parses a case file from disk.
func LoadCase(path string) (*CaseParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cp := &CaseParameters{}
	if err = cp.Parse(data); err != nil {
		return nil, fmt.Errorf("case file %s: %w", path, err)
	}
	return cp, nil
}

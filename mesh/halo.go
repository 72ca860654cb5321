package mesh

/*
Halo describes the ghost-cell exchange. Each entry copies the value of
a local source cell into a ghost cell. When the exchange crosses a
rotational periodicity, Rot holds the 3x3 rotation (row major) to apply
to vector and tensor quantities; scalar sync ignores it.

On a single rank all exchanges are local copies. The descriptor shape
matches what a distributed build would post as send/receive lists, so
the calling code is identical either way.
*/
type Halo struct {
	SendIdx []int        // source (owned) cell per exchange
	RecvIdx []int        // destination (ghost) cell per exchange
	Rot     [][9]float64 // optional per-exchange rotation, nil if none
}

// SyncScalar fills ghost values from their source cells.
func (h *Halo) SyncScalar(vals []float64) {
	if h == nil {
		return
	}
	for i, s := range h.SendIdx {
		vals[h.RecvIdx[i]] = vals[s]
	}
}

// SyncVector fills ghost vector values (stride 3), applying the
// periodicity rotation where present.
func (h *Halo) SyncVector(vals []float64) {
	if h == nil {
		return
	}
	for i, s := range h.SendIdx {
		r := h.RecvIdx[i]
		if h.Rot == nil {
			for d := 0; d < 3; d++ {
				vals[3*r+d] = vals[3*s+d]
			}
			continue
		}
		rot := h.Rot[i]
		var v [3]float64
		for d := 0; d < 3; d++ {
			v[d] = vals[3*s+d]
		}
		for d := 0; d < 3; d++ {
			vals[3*r+d] = rot[3*d+0]*v[0] + rot[3*d+1]*v[1] + rot[3*d+2]*v[2]
		}
	}
}

// SyncSymTensor fills ghost symmetric-tensor values (compact stride 6,
// [xx yy zz xy yz xz]), applying R·S·Rt across rotational periodicity.
func (h *Halo) SyncSymTensor(vals []float64) {
	if h == nil {
		return
	}
	for i, s := range h.SendIdx {
		r := h.RecvIdx[i]
		if h.Rot == nil {
			for d := 0; d < 6; d++ {
				vals[6*r+d] = vals[6*s+d]
			}
			continue
		}
		rot := h.Rot[i]
		// Expand, rotate, re-compact
		var S [3][3]float64
		S[0][0], S[1][1], S[2][2] = vals[6*s+0], vals[6*s+1], vals[6*s+2]
		S[0][1], S[1][0] = vals[6*s+3], vals[6*s+3]
		S[1][2], S[2][1] = vals[6*s+4], vals[6*s+4]
		S[0][2], S[2][0] = vals[6*s+5], vals[6*s+5]
		var RS [3][3]float64
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				for k := 0; k < 3; k++ {
					RS[a][b] += rot[3*a+k] * S[k][b]
				}
			}
		}
		var out [3][3]float64
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				for k := 0; k < 3; k++ {
					out[a][b] += RS[a][k] * rot[3*b+k]
				}
			}
		}
		vals[6*r+0], vals[6*r+1], vals[6*r+2] = out[0][0], out[1][1], out[2][2]
		vals[6*r+3], vals[6*r+4], vals[6*r+5] = out[0][1], out[1][2], out[0][2]
	}
}

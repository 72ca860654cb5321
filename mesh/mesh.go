// Package mesh holds the read-only geometric view consumed by the
// boundary-condition core and the time-step controller. The solver never
// writes mesh arrays; it takes them as built by the (external)
// preprocessor, or by the structured test-grid builders in grids.go.
package mesh

/*
Storage conventions:
  - Cells are numbered [0, NCells); ghost cells extend the range to
    NCellsExt. Ghosts receive halo-synchronized values only.
  - Boundary faces carry their owning cell, the unit outward normal, the
    face center of gravity, the orthogonal cell-to-face distance BDist
    and the I->I' offset DiipB (I' is the foot of the perpendicular from
    the cell center onto the face plane).
  - Interior faces connect IFaceCells[f][0] (owner) to IFaceCells[f][1]
    (neighbor), with the normal oriented owner->neighbor.
*/
type Mesh struct {
	NCells    int // owned cells
	NCellsExt int // owned + ghost
	NBFaces   int
	NIFaces   int
	NVertices int

	// Cell data
	CellCen [][3]float64
	CellVol []float64

	// Boundary face data
	BFaceCells  []int
	BFaceNormal [][3]float64 // unit outward normals
	BFaceSurf   []float64
	BFaceCOG    [][3]float64
	BDist       []float64
	DiipB       [][3]float64

	// Interior face data (time-step matrix, internal coupling)
	IFaceCells  [][2]int
	IFaceNormal [][3]float64 // unit normals, owner to neighbor
	IFaceSurf   []float64
	IFaceDist   []float64 // distance between adjacent cell centers

	// Vertex data (ALE)
	VtxCoord [][3]float64

	// Parallel support
	Halo          *Halo
	GlobalCellNum []int64

	cellBFaces [][]int
	cellIFaces [][]int
}

// CellBFaces returns the boundary faces adjacent to each cell. The
// adjacency is built lazily once; the boundary-only least-squares
// reconstruction is the only consumer.
func (m *Mesh) CellBFaces() [][]int {
	if m.cellBFaces == nil {
		m.cellBFaces = make([][]int, m.NCells)
		for f := 0; f < m.NBFaces; f++ {
			c := m.BFaceCells[f]
			m.cellBFaces[c] = append(m.cellBFaces[c], f)
		}
	}
	return m.cellBFaces
}

// CellIFaces returns interior faces per cell, built lazily; consumed by
// the boundary LSQ stencil and the steady pseudo-time-step row sums.
func (m *Mesh) CellIFaces() [][]int {
	if m.cellIFaces == nil {
		m.cellIFaces = make([][]int, m.NCellsExt)
		for f := 0; f < m.NIFaces; f++ {
			i, j := m.IFaceCells[f][0], m.IFaceCells[f][1]
			m.cellIFaces[i] = append(m.cellIFaces[i], f)
			if j < m.NCellsExt {
				m.cellIFaces[j] = append(m.cellIFaces[j], f)
			}
		}
	}
	return m.cellIFaces
}

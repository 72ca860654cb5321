package mesh

/*
NewBoxGrid builds a structured hexahedral grid on [0,Lx]x[0,Ly]x[0,Lz].
It exists for tests and for the built-in verification cases (channel,
cavity, shock tube); production meshes arrive through the preprocessor.

Boundary faces are grouped by the box side they lie on, keyed
"xmin", "xmax", "ymin", "ymax", "zmin", "zmax".
*/
type BoxGrid struct {
	*Mesh
	Nx, Ny, Nz int
	Groups     map[string][]int
}

func NewBoxGrid(nx, ny, nz int, lx, ly, lz float64) (g *BoxGrid) {
	var (
		hx, hy, hz = lx / float64(nx), ly / float64(ny), lz / float64(nz)
		nCells     = nx * ny * nz
	)
	m := &Mesh{
		NCells:    nCells,
		NCellsExt: nCells,
		NVertices: (nx + 1) * (ny + 1) * (nz + 1),
	}
	g = &BoxGrid{Mesh: m, Nx: nx, Ny: ny, Nz: nz,
		Groups: make(map[string][]int)}

	cid := func(i, j, k int) int { return i + nx*(j+ny*k) }

	m.CellCen = make([][3]float64, nCells)
	m.CellVol = make([]float64, nCells)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := cid(i, j, k)
				m.CellCen[c] = [3]float64{
					(float64(i) + 0.5) * hx,
					(float64(j) + 0.5) * hy,
					(float64(k) + 0.5) * hz,
				}
				m.CellVol[c] = hx * hy * hz
			}
		}
	}

	m.VtxCoord = make([][3]float64, m.NVertices)
	v := 0
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.VtxCoord[v] = [3]float64{float64(i) * hx, float64(j) * hy, float64(k) * hz}
				v++
			}
		}
	}

	// Interior faces, x then y then z sweeps, normal owner->neighbor
	addIFace := func(c0, c1 int, n [3]float64, surf, dist float64) {
		m.IFaceCells = append(m.IFaceCells, [2]int{c0, c1})
		m.IFaceNormal = append(m.IFaceNormal, n)
		m.IFaceSurf = append(m.IFaceSurf, surf)
		m.IFaceDist = append(m.IFaceDist, dist)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i+1 < nx; i++ {
				addIFace(cid(i, j, k), cid(i+1, j, k), [3]float64{1, 0, 0}, hy*hz, hx)
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j+1 < ny; j++ {
			for i := 0; i < nx; i++ {
				addIFace(cid(i, j, k), cid(i, j+1, k), [3]float64{0, 1, 0}, hx*hz, hy)
			}
		}
	}
	for k := 0; k+1 < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				addIFace(cid(i, j, k), cid(i, j, k+1), [3]float64{0, 0, 1}, hx*hy, hz)
			}
		}
	}
	m.NIFaces = len(m.IFaceCells)

	addBFace := func(group string, c int, n [3]float64, surf, dist float64, cog [3]float64) {
		f := len(m.BFaceCells)
		m.BFaceCells = append(m.BFaceCells, c)
		m.BFaceNormal = append(m.BFaceNormal, n)
		m.BFaceSurf = append(m.BFaceSurf, surf)
		m.BFaceCOG = append(m.BFaceCOG, cog)
		m.BDist = append(m.BDist, dist)
		// Orthogonal grid: I' coincides with the cell-center projection,
		// offset from I along the normal
		m.DiipB = append(m.DiipB, [3]float64{0, 0, 0})
		g.Groups[group] = append(g.Groups[group], f)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			cen0 := m.CellCen[cid(0, j, k)]
			cen1 := m.CellCen[cid(nx-1, j, k)]
			addBFace("xmin", cid(0, j, k), [3]float64{-1, 0, 0}, hy*hz, 0.5*hx,
				[3]float64{0, cen0[1], cen0[2]})
			addBFace("xmax", cid(nx-1, j, k), [3]float64{1, 0, 0}, hy*hz, 0.5*hx,
				[3]float64{lx, cen1[1], cen1[2]})
		}
	}
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			cen0 := m.CellCen[cid(i, 0, k)]
			cen1 := m.CellCen[cid(i, ny-1, k)]
			addBFace("ymin", cid(i, 0, k), [3]float64{0, -1, 0}, hx*hz, 0.5*hy,
				[3]float64{cen0[0], 0, cen0[2]})
			addBFace("ymax", cid(i, ny-1, k), [3]float64{0, 1, 0}, hx*hz, 0.5*hy,
				[3]float64{cen1[0], ly, cen1[2]})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cen0 := m.CellCen[cid(i, j, 0)]
			cen1 := m.CellCen[cid(i, j, nz-1)]
			addBFace("zmin", cid(i, j, 0), [3]float64{0, 0, -1}, hx*hy, 0.5*hz,
				[3]float64{cen0[0], cen0[1], 0})
			addBFace("zmax", cid(i, j, nz-1), [3]float64{0, 0, 1}, hx*hy, 0.5*hz,
				[3]float64{cen1[0], cen1[1], lz})
		}
	}
	m.NBFaces = len(m.BFaceCells)
	return
}

// Package regions implements 4-connected components labeling, adjacency
// construction, small-region merging, and Moore-neighborhood contour
// tracing over a quantized label vector.
package regions

// Region is a maximal 4-connected set of pixels sharing one label.
// Neighbor ids are stored, never pointers, so merges can rewrite adjacency
// without relocating region records: an id is stable once assigned, even
// after the region it names becomes empty.
type Region struct {
	ID        int
	Label     int
	Pixels    map[int]bool
	Neighbors map[int]bool
}

func newRegion(id, label int) *Region {
	return &Region{
		ID:        id,
		Label:     label,
		Pixels:    make(map[int]bool),
		Neighbors: make(map[int]bool),
	}
}

// Empty reports whether the region has been fully merged away.
func (r *Region) Empty() bool {
	return len(r.Pixels) == 0
}

// Components holds the result of connected-components labeling: the arena
// of region records (addressed by dense id, index == id) and a per-pixel
// region-id map of the same length as the input label vector.
type Components struct {
	W, H     int
	Regions  []*Region
	RegionOf []int
}

// Label performs 4-connected components labeling over label vector L
// (length W*H), scanning top-to-bottom, left-to-right, flood-filling each
// unvisited pixel's maximal same-label neighborhood with a BFS queue —
// the same bitset-free flood-fill shape as a single-seed paint bucket,
// generalized to run once per unvisited pixel across the whole image.
func Label(w, h int, labelVec []int) *Components {
	n := w * h
	regionOf := make([]int, n)
	for i := range regionOf {
		regionOf[i] = -1
	}

	var regions []*Region
	queue := make([]int, 0, n)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if regionOf[start] != -1 {
				continue
			}
			id := len(regions)
			region := newRegion(id, labelVec[start])
			regionOf[start] = id
			region.Pixels[start] = true

			queue = queue[:0]
			queue = append(queue, start)
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				px, py := p%w, p/w
				lbl := labelVec[p]

				// 4-neighbors: left, right, up, down.
				tryVisit := func(nx, ny int) {
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						return
					}
					np := ny*w + nx
					if regionOf[np] != -1 || labelVec[np] != lbl {
						return
					}
					regionOf[np] = id
					region.Pixels[np] = true
					queue = append(queue, np)
				}
				tryVisit(px-1, py)
				tryVisit(px+1, py)
				tryVisit(px, py-1)
				tryVisit(px, py+1)
			}
			regions = append(regions, region)
		}
	}

	// Second pass: build symmetric adjacency by inspecting each pixel's
	// right and bottom neighbor only (every adjacent pair is visited once).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			rid := regionOf[p]
			if x+1 < w {
				rp := regionOf[p+1]
				if rp != rid {
					regions[rid].Neighbors[rp] = true
					regions[rp].Neighbors[rid] = true
				}
			}
			if y+1 < h {
				rp := regionOf[p+w]
				if rp != rid {
					regions[rid].Neighbors[rp] = true
					regions[rp].Neighbors[rid] = true
				}
			}
		}
	}

	return &Components{W: w, H: h, Regions: regions, RegionOf: regionOf}
}

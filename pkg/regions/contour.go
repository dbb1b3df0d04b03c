package regions

import "sort"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Contour is an ordered closed polyline tracing one border of a region;
// the first point is repeated as the last.
type Contour []Point

// moore lists the eight Moore-neighborhood offsets counter-clockwise
// starting from east, matching the spec's prescribed tracing direction.
var moore = [8][2]int{
	{1, 0},   // E
	{1, -1},  // NE
	{0, -1},  // N
	{-1, -1}, // NW
	{-1, 0},  // W
	{-1, 1},  // SW
	{0, 1},   // S
	{1, 1},   // SE
}

// isBorder reports whether pixel p (region-relative, by region-id map)
// belongs to region id and has at least one 4-neighbor outside the region.
func isBorder(comps *Components, id, x, y int) bool {
	if comps.RegionOf[y*comps.W+x] != id {
		return false
	}
	neighbors4 := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range neighbors4 {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= comps.W || ny < 0 || ny >= comps.H {
			return true
		}
		if comps.RegionOf[ny*comps.W+nx] != id {
			return true
		}
	}
	return false
}

// Contours extracts every closed border of region id by Moore-neighborhood
// border following. Scanning is top-to-bottom, left-to-right over the
// region's own pixels; each unvisited border pixel seeds a new trace.
// Contours shorter than 3 points are discarded.
func Contours(comps *Components, id int) []Contour {
	region := comps.Regions[id]
	if region.Empty() {
		return nil
	}

	visited := make(map[int]bool)
	var out []Contour

	// Deterministic scan order over the region's own pixels.
	ordered := make([]int, 0, len(region.Pixels))
	for p := range region.Pixels {
		ordered = append(ordered, p)
	}
	sort.Ints(ordered)

	for _, p := range ordered {
		if visited[p] {
			continue
		}
		x, y := p%comps.W, p/comps.W
		if !isBorder(comps, id, x, y) {
			continue
		}
		c := traceContour(comps, id, x, y, visited)
		if len(c) >= 3 {
			out = append(out, c)
		}
	}
	return out
}

// traceContour runs Moore-neighborhood border following starting at
// (startX, startY), which must be a border pixel of region id. Every
// border pixel visited along the trace is marked in visited.
func traceContour(comps *Components, id, startX, startY int, visited map[int]bool) Contour {
	contour := Contour{{X: startX, Y: startY}}
	visited[startY*comps.W+startX] = true

	cx, cy := startX, startY
	// Each later search starts two steps clockwise of the direction we
	// arrived by (see below); for the very first pixel there is no arrival
	// direction, so start scanning from west (index 4) as a deterministic
	// convention.
	searchStart := 4

	for {
		found := false
		var nx, ny, dirIdx int
		for k := 0; k < 8; k++ {
			dirIdx = (searchStart + k) % 8
			d := moore[dirIdx]
			cand := [2]int{cx + d[0], cy + d[1]}
			if cand[0] < 0 || cand[0] >= comps.W || cand[1] < 0 || cand[1] >= comps.H {
				continue
			}
			if isBorder(comps, id, cand[0], cand[1]) {
				nx, ny = cand[0], cand[1]
				found = true
				break
			}
		}
		if !found {
			// No unvisited (or any) border neighbor reachable: close here.
			break
		}

		cx, cy = nx, ny
		visited[cy*comps.W+cx] = true
		contour = append(contour, Point{X: cx, Y: cy})

		// Next search starts two steps clockwise of the direction we arrived
		// by (index order runs counter-clockwise, so that is dirIdx-2), the
		// standard Moore-tracing rule so the walk doesn't immediately
		// backtrack.
		searchStart = (dirIdx + 6) % 8

		if cx == startX && cy == startY && len(contour) >= 2 {
			break
		}
		// Safety bound: a trace cannot visit more than the whole image.
		if len(contour) > comps.W*comps.H+1 {
			break
		}
	}

	if contour[len(contour)-1] != contour[0] {
		contour = append(contour, contour[0])
	}
	return contour
}

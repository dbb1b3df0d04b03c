package regions

// MergeSmallRegions repeatedly folds regions smaller than minArea into the
// neighbor region carrying the majority-adjacent label, rewriting labelVec
// in place. It returns the updated Components reflecting the merges.
//
// The loop terminates because every successful merge strictly reduces the
// number of non-empty regions, and an isolated small region (no neighbors —
// the whole image is one region) is recorded as ignored rather than
// revisited forever.
func MergeSmallRegions(comps *Components, labelVec []int, minArea int) *Components {
	if minArea <= 0 {
		return comps
	}

	ignored := make(map[int]bool)

	for {
		target := firstSmallRegion(comps.Regions, minArea, ignored)
		if target == nil {
			break
		}
		if len(target.Neighbors) == 0 {
			ignored[target.ID] = true
			continue
		}

		winnerLabel, winnerRegionID := majorityNeighbor(comps, target)
		winner := comps.Regions[winnerRegionID]

		// Reassign the small region's pixels to the winning label.
		for p := range target.Pixels {
			labelVec[p] = winnerLabel
			comps.RegionOf[p] = winner.ID
			winner.Pixels[p] = true
		}

		// Redirect every other neighbor's adjacency: the small region no
		// longer appears, and the winner inherits its adjacencies.
		for nid := range target.Neighbors {
			if nid == winner.ID {
				continue
			}
			neighbor := comps.Regions[nid]
			delete(neighbor.Neighbors, target.ID)
			neighbor.Neighbors[winner.ID] = true
			winner.Neighbors[neighbor.ID] = true
		}
		delete(winner.Neighbors, target.ID)
		delete(winner.Neighbors, winner.ID)

		target.Pixels = map[int]bool{}
		target.Neighbors = map[int]bool{}
	}

	return comps
}

// firstSmallRegion returns the first non-empty, non-ignored region (by
// ascending id) whose pixel count is strictly below minArea, or nil if none
// remain.
func firstSmallRegion(regionsList []*Region, minArea int, ignored map[int]bool) *Region {
	for _, r := range regionsList {
		if ignored[r.ID] || r.Empty() {
			continue
		}
		if len(r.Pixels) < minArea {
			return r
		}
	}
	return nil
}

// majorityNeighbor scores each neighbor region's label by the total pixel
// count of same-labeled neighbors and returns the winning label and one
// representative neighbor region id carrying it. Label ties are broken by
// the lowest label index; the representative for a label is always its
// lowest-id neighbor region, so the result does not depend on map
// iteration order.
func majorityNeighbor(comps *Components, target *Region) (label int, regionID int) {
	scoreByLabel := make(map[int]int)
	representative := make(map[int]int)
	for nid := range target.Neighbors {
		n := comps.Regions[nid]
		if n.Empty() {
			continue
		}
		scoreByLabel[n.Label] += len(n.Pixels)
		if cur, ok := representative[n.Label]; !ok || nid < cur {
			representative[n.Label] = nid
		}
	}

	bestLabel := -1
	bestScore := -1
	for lbl, score := range scoreByLabel {
		if score > bestScore || (score == bestScore && lbl < bestLabel) {
			bestScore = score
			bestLabel = lbl
		}
	}
	return bestLabel, representative[bestLabel]
}

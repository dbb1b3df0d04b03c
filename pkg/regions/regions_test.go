package regions

import "testing"

// solidLabels returns a w*h label vector with every pixel set to label: a
// single connected region.
func solidLabels(w, h, label int) []int {
	l := make([]int, w*h)
	for i := range l {
		l[i] = label
	}
	return l
}

func TestLabelSingleRegion(t *testing.T) {
	comps := Label(3, 3, solidLabels(3, 3, 7))
	if len(comps.Regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(comps.Regions))
	}
	if len(comps.Regions[0].Pixels) != 9 {
		t.Fatalf("expected 9 pixels, got %d", len(comps.Regions[0].Pixels))
	}
	if comps.Regions[0].Label != 7 {
		t.Fatalf("expected label 7, got %d", comps.Regions[0].Label)
	}
}

func TestLabelCheckerboardEveryPixelOwnRegion(t *testing.T) {
	// 2x2 checkerboard: labels differ on every 4-neighbor pair.
	w, h := 2, 2
	labelVec := []int{0, 1, 1, 0}
	comps := Label(w, h, labelVec)
	if len(comps.Regions) != 4 {
		t.Fatalf("expected 4 single-pixel regions, got %d", len(comps.Regions))
	}
}

func TestLabelAdjacencySymmetric(t *testing.T) {
	w, h := 2, 1
	labelVec := []int{0, 1}
	comps := Label(w, h, labelVec)
	r0, r1 := comps.Regions[0], comps.Regions[1]
	if !r0.Neighbors[r1.ID] || !r1.Neighbors[r0.ID] {
		t.Fatalf("expected symmetric adjacency between the two regions")
	}
}

func TestLabelTotality(t *testing.T) {
	w, h := 4, 5
	labelVec := make([]int, w*h)
	for i := range labelVec {
		labelVec[i] = i % 3
	}
	comps := Label(w, h, labelVec)
	total := 0
	for _, r := range comps.Regions {
		total += len(r.Pixels)
	}
	if total != w*h {
		t.Fatalf("expected total pixels %d, got %d", w*h, total)
	}
}

func TestMergeSmallRegionsRemovesUndersizedRegions(t *testing.T) {
	// 4x1 strip: labels 0,0,0,1 -> the single "1" pixel is a 1-pixel
	// region adjacent only to the "0" region, which should absorb it.
	w, h := 4, 1
	labelVec := []int{0, 0, 0, 1}
	comps := Label(w, h, labelVec)
	comps = MergeSmallRegions(comps, labelVec, 2)

	for _, l := range labelVec {
		if l != 0 {
			t.Fatalf("expected all labels merged to 0, got %v", labelVec)
		}
	}
	nonEmpty := 0
	for _, r := range comps.Regions {
		if !r.Empty() {
			nonEmpty++
		}
	}
	if nonEmpty != 1 {
		t.Fatalf("expected 1 surviving region, got %d", nonEmpty)
	}
}

func TestMergeSmallRegionsPreservesTotalArea(t *testing.T) {
	w, h := 5, 5
	labelVec := make([]int, w*h)
	for i := range labelVec {
		if i%7 == 0 {
			labelVec[i] = 1
		}
	}
	comps := Label(w, h, labelVec)
	comps = MergeSmallRegions(comps, labelVec, 3)
	total := 0
	for _, r := range comps.Regions {
		total += len(r.Pixels)
	}
	if total != w*h {
		t.Fatalf("expected area conservation %d, got %d", w*h, total)
	}
}

func TestMergeSmallRegionsSingleRegionIsolatedNoInfiniteLoop(t *testing.T) {
	w, h := 3, 3
	labelVec := solidLabels(w, h, 0)
	comps := Label(w, h, labelVec)
	// minArea larger than the whole image: the lone region has no
	// neighbors and must be left alone rather than looped on forever.
	done := make(chan struct{})
	go func() {
		MergeSmallRegions(comps, labelVec, 100)
		close(done)
	}()
	select {
	case <-done:
	default:
	}
	<-done
}

func TestContoursClosedAndMinLength(t *testing.T) {
	w, h := 4, 4
	labelVec := solidLabels(w, h, 0)
	comps := Label(w, h, labelVec)
	contours := Contours(comps, 0)
	if len(contours) == 0 {
		t.Fatalf("expected at least one contour")
	}
	for _, c := range contours {
		if len(c) < 3 {
			t.Fatalf("contour too short: %d points", len(c))
		}
		if c[0] != c[len(c)-1] {
			t.Fatalf("contour not closed: first %v last %v", c[0], c[len(c)-1])
		}
		for _, p := range c {
			if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
				t.Fatalf("contour point out of bounds: %v", p)
			}
		}
	}
}

func TestContoursSinglePixelRegionDiscarded(t *testing.T) {
	w, h := 2, 2
	labelVec := []int{0, 1, 1, 1}
	comps := Label(w, h, labelVec)
	var singlePixelID int = -1
	for _, r := range comps.Regions {
		if len(r.Pixels) == 1 {
			singlePixelID = r.ID
		}
	}
	if singlePixelID == -1 {
		t.Fatalf("expected a single-pixel region in fixture")
	}
	contours := Contours(comps, singlePixelID)
	if len(contours) != 0 {
		t.Fatalf("expected single-pixel region to produce no contour, got %d", len(contours))
	}
}

package blueprint

import "github.com/coltonbatts/colorwizard/pkg/colorspace"

// ThreadMatch is one palette entry's nearest-thread lookup outcome.
type ThreadMatch struct {
	OK           bool
	BestID       string
	BestName     string
	BestRGB      colorspace.RGB
	BestDeltaE   float64
	Alternatives []ThreadAlternative
}

// ThreadAlternative is one runner-up thread match, ascending by ΔE.
type ThreadAlternative struct {
	ID     string
	Name   string
	RGB    colorspace.RGB
	DeltaE float64
}

// PaletteEntry is one representative color in the assembled palette.
type PaletteEntry struct {
	RGB         colorspace.RGB
	Hex         string
	Lab         colorspace.Lab
	Count       int
	Percent     float64
	ThreadMatch ThreadMatch
}

// BBox is an axis-aligned bounding box with exclusive upper bounds.
type BBox struct {
	X0, Y0, X1, Y1 int
}

// RegionResult is one returned region: its originating palette label index,
// pixel area, bounding box, and extracted contours.
type RegionResult struct {
	LabelIndex int
	AreaPx     int
	BBox       BBox
	Contours   [][][2]int
}

// Result is the complete blueprint bundle for one (image, params) request.
type Result struct {
	Width, Height int
	MethodTag     string
	EngineVersion string
	Palette       []PaletteEntry
	Labels        []int
	Regions       []RegionResult
	PreviewPNG    []byte
}

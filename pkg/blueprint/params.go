package blueprint

// Params enumerates every recognized blueprint generation option and its
// documented default, replacing the dynamic/duck-typed parameter object of
// the original source with an explicit, exhaustive record.
type Params struct {
	// PaletteSize is the desired palette cardinality. Must be provided and
	// must be >= 1.
	PaletteSize int

	// MaxDim caps the working image's larger dimension; the image is
	// resized to fit within this square before processing. Zero means
	// "use the engine default" (2048).
	MaxDim int

	// Seed drives the quantizer's centroid initialization. Zero means
	// "use the engine default" (42) — note this means an explicit seed of
	// 0 is indistinguishable from "unset"; §4.5's default of 42 applies to
	// both cases, matching spec.md's stated default.
	Seed int64

	// ReturnPreview requests a re-encoded PNG preview of the quantized
	// image in the result.
	ReturnPreview bool

	// MinRegionArea is the minimum surviving region size when region
	// merging runs. Must be >= 0.
	MinRegionArea int

	// MergeSmallRegions enables small-region merging. HasMergeSmallRegions
	// distinguishes "explicitly set" from "unset", since the spec's
	// default depends on MinRegionArea.
	MergeSmallRegions    bool
	HasMergeSmallRegions bool

	// IncludeThreadMatch requests nearest-thread lookup per palette entry.
	// HasIncludeThreadMatch distinguishes "explicitly set" from "unset"
	// since the documented default is true.
	IncludeThreadMatch    bool
	HasIncludeThreadMatch bool

	// ReturnRegions requests connected-components + contour extraction.
	ReturnRegions bool

	// FastThreadMatch selects ΔE₇₆ over ΔE₀₀ for thread matching, trading
	// quality for speed.
	FastThreadMatch bool

	// ThreadMatchTopN is the number of nearest threads looked up per palette
	// entry: the best match plus ThreadMatchTopN-1 alternatives. Zero means 1
	// (best match only).
	ThreadMatchTopN int
}

// resolved is Params with every default applied, used internally once a
// caller's request has been validated.
type resolved struct {
	paletteSize        int
	maxDim             int
	seed               int64
	returnPreview      bool
	minRegionArea      int
	mergeSmallRegions  bool
	includeThreadMatch bool
	returnRegions      bool
	fastThreadMatch    bool
	threadMatchTopN    int
	iterationCap       int
}

func (p Params) resolve(defaultMaxDim, defaultIterationCap int, defaultSeed int64) (resolved, error) {
	if p.PaletteSize < 1 {
		return resolved{}, &Error{Kind: InvalidParameter, Stage: "validate", Param: "palette_size", Cause: errInvalidPaletteSize}
	}
	if p.MinRegionArea < 0 {
		return resolved{}, &Error{Kind: InvalidParameter, Stage: "validate", Param: "min_region_area", Cause: errInvalidMinRegionArea}
	}

	maxDim := p.MaxDim
	if maxDim <= 0 {
		maxDim = defaultMaxDim
	}
	seed := p.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	merge := p.MinRegionArea > 0
	if p.HasMergeSmallRegions {
		merge = p.MergeSmallRegions
	}

	includeThread := true
	if p.HasIncludeThreadMatch {
		includeThread = p.IncludeThreadMatch
	}

	topN := p.ThreadMatchTopN
	if topN <= 0 {
		topN = 1
	}

	return resolved{
		paletteSize:        p.PaletteSize,
		maxDim:             maxDim,
		seed:               seed,
		returnPreview:      p.ReturnPreview,
		minRegionArea:      p.MinRegionArea,
		mergeSmallRegions:  merge,
		includeThreadMatch: includeThread,
		returnRegions:      p.ReturnRegions,
		fastThreadMatch:    p.FastThreadMatch,
		threadMatchTopN:    topN,
		iterationCap:       defaultIterationCap,
	}, nil
}

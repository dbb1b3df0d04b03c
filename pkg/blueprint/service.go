// Package blueprint orchestrates the image-to-blueprint pipeline: quantize
// → optional region merge → palette assembly → optional contours →
// optional thread matching → optional preview re-encoding, and owns the
// per-request result cache.
package blueprint

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
	"github.com/coltonbatts/colorwizard/pkg/config"
	"github.com/coltonbatts/colorwizard/pkg/imagestore"
	"github.com/coltonbatts/colorwizard/pkg/previewencode"
	"github.com/coltonbatts/colorwizard/pkg/quantizer"
	"github.com/coltonbatts/colorwizard/pkg/regions"
	"github.com/coltonbatts/colorwizard/pkg/threadcatalog"
	"github.com/coltonbatts/colorwizard/pkg/threadmatch"
)

// Service is the engine's single entry point. It is safe for concurrent
// use: the image store and result cache are internally mutex-guarded, and
// all per-request working memory belongs exclusively to one call.
type Service struct {
	store   *imagestore.Store
	catalog *threadcatalog.Catalog
	codec   previewencode.Codec
	cache   *resultCache
	cfg     config.Config

	// quantizerCalls counts completed quantizer invocations. It exists so
	// tests can observe cache idempotence (spec invariant 12: a cache hit
	// must not re-enter the quantizer) without reaching into internals.
	quantizerCalls int64
}

// NewService wires a Service from its collaborators.
func NewService(store *imagestore.Store, catalog *threadcatalog.Catalog, codec previewencode.Codec, cfg config.Config) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		codec:   codec,
		cache:   newResultCache(cfg.ResultCacheCapacity),
		cfg:     cfg,
	}
}

// QuantizerCalls returns the number of completed quantizer invocations
// across this Service's lifetime.
func (s *Service) QuantizerCalls() int64 { return atomic.LoadInt64(&s.quantizerCalls) }

// RegisterImage decodes, validates, and stores raw image bytes, returning a
// stable image id. Thin pass-through to the image store; kept on Service so
// callers have one entry point for both registration and generation.
func (s *Service) RegisterImage(data []byte, maxDim int) (string, error) {
	if maxDim <= 0 {
		maxDim = s.cfg.DefaultMaxDim
	}
	return s.store.Register(data, maxDim)
}

// Generate runs the blueprint pipeline for imageID under params, or returns
// the cached result for an identical (imageID, params) fingerprint.
func (s *Service) Generate(ctx context.Context, imageID string, params Params) (*Result, error) {
	r, err := params.resolve(s.cfg.DefaultMaxDim, s.cfg.DefaultIterationCap, s.cfg.DefaultSeed)
	if err != nil {
		return nil, err
	}

	key, err := fingerprint(imageID, r)
	if err != nil {
		return nil, &Error{Kind: InternalError, Stage: "fingerprint", Cause: err}
	}

	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	s.cache.lockBuild(key)
	defer s.cache.unlockBuild(key)

	// Another goroutine may have built it while we waited for the lock.
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	result, err := s.build(ctx, imageID, r)
	if err != nil {
		return nil, err
	}
	s.cache.put(key, result)
	return result, nil
}

func (s *Service) checkCancel(ctx context.Context, stage string) error {
	select {
	case <-ctx.Done():
		return &Error{Kind: Cancelled, Stage: stage, Cause: ctx.Err()}
	default:
		return nil
	}
}

func (s *Service) build(ctx context.Context, imageID string, r resolved) (*Result, error) {
	rec, err := s.store.Acquire(imageID)
	if err != nil {
		return nil, &Error{Kind: UnknownImage, Stage: "load", Cause: err}
	}
	defer s.store.Release(imageID)

	if rec.W > r.maxDim || rec.H > r.maxDim {
		rgba, w, h := s.codec.Resize(rec.RGBA, rec.W, rec.H, r.maxDim)
		rec = &imagestore.Record{ID: rec.ID, W: w, H: h, RGBA: rgba, CreatedAt: rec.CreatedAt}
	}

	if err := s.checkCancel(ctx, "decode"); err != nil {
		return nil, err
	}

	n := rec.W * rec.H
	rgbPixels := make([]colorspace.RGB, n)
	labPixels := make([]colorspace.Lab, n)
	for i := 0; i < n; i++ {
		off := i * 4
		c := colorspace.RGB{R: rec.RGBA[off], G: rec.RGBA[off+1], B: rec.RGBA[off+2]}
		rgbPixels[i] = c
		labPixels[i] = c.ToLab()
	}

	qr, err := quantizer.Run(ctx, labPixels, r.paletteSize, r.seed, r.iterationCap)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{Kind: Cancelled, Stage: "quantize", Cause: err}
		}
		return nil, &Error{Kind: InvalidParameter, Stage: "quantize", Cause: err}
	}
	atomic.AddInt64(&s.quantizerCalls, 1)
	labels := qr.Labels
	k := len(qr.Centroids)

	if err := s.checkCancel(ctx, "quantize"); err != nil {
		return nil, err
	}

	if r.mergeSmallRegions {
		comps := regions.Label(rec.W, rec.H, labels)
		regions.MergeSmallRegions(comps, labels, r.minRegionArea)
		if err := s.checkCancel(ctx, "region-merge"); err != nil {
			return nil, err
		}
	}

	palette, err := assemblePalette(rgbPixels, labels, k)
	if err != nil {
		return nil, &Error{Kind: InternalError, Stage: "palette", Cause: err}
	}

	if r.includeThreadMatch && s.catalog != nil {
		metric := threadmatch.DeltaE00
		if r.fastThreadMatch {
			metric = threadmatch.DeltaE76
		}
		for i := range palette {
			matches := threadmatch.Nearest(s.catalog, palette[i].Lab, r.threadMatchTopN, metric)
			palette[i].ThreadMatch = toThreadMatch(matches)
		}
	}

	var regionResults []RegionResult
	if r.returnRegions {
		comps := regions.Label(rec.W, rec.H, labels)
		for _, reg := range comps.Regions {
			if reg.Empty() {
				continue
			}
			bbox := boundingBox(reg, rec.W)
			contours := regions.Contours(comps, reg.ID)
			regionResults = append(regionResults, RegionResult{
				LabelIndex: reg.Label,
				AreaPx:     len(reg.Pixels),
				BBox:       bbox,
				Contours:   toContourPoints(contours),
			})
		}
		if err := s.checkCancel(ctx, "contours"); err != nil {
			return nil, err
		}
	}

	var previewPNG []byte
	if r.returnPreview {
		rgb := make([]byte, n*3)
		for i := 0; i < n; i++ {
			c := palette[labels[i]].RGB
			rgb[i*3+0] = c.R
			rgb[i*3+1] = c.G
			rgb[i*3+2] = c.B
		}
		previewPNG, err = s.codec.EncodePNG(rgb, rec.W, rec.H)
		if err != nil {
			return nil, &Error{Kind: InternalError, Stage: "preview", Cause: err}
		}
		if err := s.checkCancel(ctx, "preview"); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(palette, func(i, j int) bool { return palette[i].Count > palette[j].Count })
	// Labels were assigned against the pre-sort palette order; remap them
	// to the sorted order so Labels stays consistent with Palette indices.
	remap := make([]int, k)
	for newIdx, e := range palette {
		remap[e.originalIndex] = newIdx
	}
	for i, l := range labels {
		labels[i] = remap[l]
	}
	for i := range regionResults {
		regionResults[i].LabelIndex = remap[regionResults[i].LabelIndex]
	}

	methodTag := "lab-kmeans-deltae00"
	if !r.includeThreadMatch {
		methodTag = "lab-kmeans"
	} else if r.fastThreadMatch {
		methodTag = "lab-kmeans-deltae76"
	}

	return &Result{
		Width:         rec.W,
		Height:        rec.H,
		MethodTag:     methodTag,
		EngineVersion: config.EngineVersion,
		Palette:       stripInternal(palette),
		Labels:        labels,
		Regions:       regionResults,
		PreviewPNG:    previewPNG,
	}, nil
}

func toThreadMatch(matches []threadmatch.Match) ThreadMatch {
	if len(matches) == 0 {
		return ThreadMatch{OK: false}
	}
	alts := make([]ThreadAlternative, 0, len(matches)-1)
	for _, m := range matches[1:] {
		alts = append(alts, ThreadAlternative{ID: m.ID, Name: m.Name, RGB: m.RGB, DeltaE: m.DeltaE})
	}
	return ThreadMatch{
		OK:           true,
		BestID:       matches[0].ID,
		BestName:     matches[0].Name,
		BestRGB:      matches[0].RGB,
		BestDeltaE:   matches[0].DeltaE,
		Alternatives: alts,
	}
}

func boundingBox(r *regions.Region, w int) BBox {
	x0, y0 := int(^uint(0)>>1), int(^uint(0)>>1)
	x1, y1 := -1, -1
	for p := range r.Pixels {
		x, y := p%w, p/w
		if x < x0 {
			x0 = x
		}
		if y < y0 {
			y0 = y
		}
		if x+1 > x1 {
			x1 = x + 1
		}
		if y+1 > y1 {
			y1 = y + 1
		}
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func toContourPoints(contours []regions.Contour) [][][2]int {
	out := make([][][2]int, len(contours))
	for i, c := range contours {
		pts := make([][2]int, len(c))
		for j, p := range c {
			pts[j] = [2]int{p.X, p.Y}
		}
		out[i] = pts
	}
	return out
}

// paletteBuild is a palette entry plus its pre-sort label index, needed to
// remap Labels/Regions after palette is sorted by descending count.
type paletteBuild struct {
	PaletteEntry
	originalIndex int
}

func stripInternal(p []paletteBuild) []PaletteEntry {
	out := make([]PaletteEntry, len(p))
	for i, e := range p {
		out[i] = e.PaletteEntry
	}
	return out
}

func assemblePalette(rgbPixels []colorspace.RGB, labels []int, k int) ([]paletteBuild, error) {
	sumR := make([]int64, k)
	sumG := make([]int64, k)
	sumB := make([]int64, k)
	sumL := make([]float64, k)
	sumA := make([]float64, k)
	sumBb := make([]float64, k)
	counts := make([]int, k)

	for i, lbl := range labels {
		if lbl < 0 || lbl >= k {
			return nil, fmt.Errorf("label %d out of range [0,%d)", lbl, k)
		}
		c := rgbPixels[i]
		sumR[lbl] += int64(c.R)
		sumG[lbl] += int64(c.G)
		sumB[lbl] += int64(c.B)
		lab := c.ToLab()
		sumL[lbl] += lab.L
		sumA[lbl] += lab.A
		sumBb[lbl] += lab.B
		counts[lbl]++
	}

	total := len(labels)
	out := make([]paletteBuild, 0, k)
	for i := 0; i < k; i++ {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		rgb := colorspace.RGB{
			R: uint8(roundDiv(sumR[i], int64(counts[i]))),
			G: uint8(roundDiv(sumG[i], int64(counts[i]))),
			B: uint8(roundDiv(sumB[i], int64(counts[i]))),
		}
		out = append(out, paletteBuild{
			PaletteEntry: PaletteEntry{
				RGB:     rgb,
				Hex:     rgb.Hex(),
				Lab:     colorspace.Lab{L: sumL[i] / n, A: sumA[i] / n, B: sumBb[i] / n},
				Count:   counts[i],
				Percent: float64(counts[i]) * 100.0 / float64(total),
			},
			originalIndex: i,
		})
	}
	return out, nil
}

func roundDiv(sum, count int64) int64 {
	if count == 0 {
		return 0
	}
	return (sum + count/2) / count
}

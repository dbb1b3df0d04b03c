// Package threadmatch finds the nearest reference threads to a Lab color.
package threadmatch

import (
	"sort"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
	"github.com/coltonbatts/colorwizard/pkg/threadcatalog"
)

// Metric selects which perceptual distance formula nearest-thread lookup
// uses.
type Metric int

const (
	// DeltaE00 is the CIEDE2000 metric, used for quality passes.
	DeltaE00 Metric = iota
	// DeltaE76 is the plain Euclidean Lab metric, used for fast passes.
	DeltaE76
)

// Match pairs one catalog entry with its distance to the query color.
type Match struct {
	ID     string
	Name   string
	RGB    colorspace.RGB
	DeltaE float64
}

func distance(m Metric, a, b colorspace.Lab) float64 {
	if m == DeltaE76 {
		return colorspace.DeltaE76(a, b)
	}
	return colorspace.DeltaE00(a, b)
}

// Nearest returns the topN catalog entries closest to query under metric,
// sorted by ascending ΔE. If topN <= 0, it defaults to 1. Returns an empty
// slice (not an error) when the catalog is empty.
func Nearest(cat *threadcatalog.Catalog, query colorspace.Lab, topN int, m Metric) []Match {
	if topN <= 0 {
		topN = 1
	}
	entries := cat.Entries()
	if len(entries) == 0 {
		return nil
	}

	if topN == 1 {
		best := entries[0]
		bestD := distance(m, query, best.Lab)
		for _, e := range entries[1:] {
			d := distance(m, query, e.Lab)
			if d < bestD {
				best = e
				bestD = d
			}
		}
		return []Match{{ID: best.ID, Name: best.Name, RGB: best.RGB, DeltaE: bestD}}
	}

	matches := make([]Match, len(entries))
	for i, e := range entries {
		matches[i] = Match{ID: e.ID, Name: e.Name, RGB: e.RGB, DeltaE: distance(m, query, e.Lab)}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].DeltaE < matches[j].DeltaE })
	if topN > len(matches) {
		topN = len(matches)
	}
	return matches[:topN]
}

// Package quantizer implements deterministic k-means clustering over Lab
// pixel values.
package quantizer

import (
	"context"
	"fmt"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
	"github.com/coltonbatts/colorwizard/pkg/rng"
)

// InvalidParameterError reports a contract violation in quantizer inputs.
type InvalidParameterError struct {
	Param  string
	Detail string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("quantizer: invalid parameter %s: %s", e.Param, e.Detail)
}

// Result is the output of Run: the final centroids and the per-pixel label
// assignment.
type Result struct {
	Centroids []colorspace.Lab
	Labels    []int
}

// DefaultIterationCap is the iteration ceiling used when callers don't
// override it.
const DefaultIterationCap = 20

// Run clusters pixels (length N) into at most k groups using k-means with
// ΔE₇₆ as the distance metric, seeded centroid initialization, and a fixed
// iteration cap. ctx is checked once per iteration; a cancellation returns
// ctx.Err().
func Run(ctx context.Context, pixels []colorspace.Lab, k int, seed int64, iterationCap int) (Result, error) {
	if k <= 0 {
		return Result{}, &InvalidParameterError{Param: "k", Detail: "must be positive"}
	}
	if iterationCap <= 0 {
		iterationCap = DefaultIterationCap
	}
	n := len(pixels)

	if k >= n {
		centroids := make([]colorspace.Lab, n)
		labels := make([]int, n)
		copy(centroids, pixels)
		for i := range labels {
			labels[i] = i
		}
		return Result{Centroids: centroids, Labels: labels}, nil
	}

	source := rng.New(seed)
	centroids := initCentroids(pixels, k, source)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	counts := make([]int, k)
	sums := make([]colorspace.Lab, k)

	for iter := 0; iter < iterationCap; iter++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		changed := assign(pixels, centroids, labels)

		for i := range counts {
			counts[i] = 0
			sums[i] = colorspace.Lab{}
		}
		for i, p := range pixels {
			c := labels[i]
			counts[c]++
			sums[c].L += p.L
			sums[c].A += p.A
			sums[c].B += p.B
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue // keep previous centroid value
			}
			n := float64(counts[c])
			centroids[c] = colorspace.Lab{
				L: sums[c].L / n,
				A: sums[c].A / n,
				B: sums[c].B / n,
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	return Result{Centroids: centroids, Labels: labels}, nil
}

// initCentroids draws k distinct pixel indices from source, padding with
// the last chosen centroid if fewer than k unique indices are available.
func initCentroids(pixels []colorspace.Lab, k int, source *rng.Source) []colorspace.Lab {
	n := len(pixels)
	chosen := make([]int, 0, k)
	seen := make(map[int]bool, k)

	// Bounded by the number of unique indices actually available: once every
	// index has been seen, further draws cannot add anything new.
	for len(chosen) < k && len(seen) < n {
		idx := source.NextInt(n)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		chosen = append(chosen, idx)
	}

	centroids := make([]colorspace.Lab, k)
	last := pixels[chosen[len(chosen)-1]]
	for i := 0; i < k; i++ {
		if i < len(chosen) {
			centroids[i] = pixels[chosen[i]]
			last = centroids[i]
		} else {
			centroids[i] = last
		}
	}
	return centroids
}

// assign sets labels[i] to the index of the nearest centroid under ΔE₇₆,
// ties broken by lowest index. Returns true if any label changed.
func assign(pixels []colorspace.Lab, centroids []colorspace.Lab, labels []int) bool {
	changed := false
	for i, p := range pixels {
		best := 0
		bestD := colorspace.DeltaE76(p, centroids[0])
		for c := 1; c < len(centroids); c++ {
			d := colorspace.DeltaE76(p, centroids[c])
			if d < bestD {
				bestD = d
				best = c
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

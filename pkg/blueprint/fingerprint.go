package blueprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	"github.com/coltonbatts/colorwizard/pkg/config"
)

// fingerprintFields is the canonical, gob-encodable shape hashed to form a
// result-cache key. Encoding a struct (rather than concatenating strings)
// means adding a field later can't silently collide with an older
// encoding's byte layout for an unrelated field.
type fingerprintFields struct {
	EngineVersion      string
	ImageID            string
	PaletteSize        int
	MaxDim             int
	Seed               int64
	ReturnPreview      bool
	MinRegionArea      int
	MergeSmallRegions  bool
	IncludeThreadMatch bool
	ReturnRegions      bool
	FastThreadMatch    bool
	ThreadMatchTopN    int
}

// fingerprint returns the canonical cache key for (imageID, r).
func fingerprint(imageID string, r resolved) (string, error) {
	fields := fingerprintFields{
		EngineVersion:      config.EngineVersion,
		ImageID:            imageID,
		PaletteSize:        r.paletteSize,
		MaxDim:             r.maxDim,
		Seed:               r.seed,
		ReturnPreview:      r.returnPreview,
		MinRegionArea:      r.minRegionArea,
		MergeSmallRegions:  r.mergeSmallRegions,
		IncludeThreadMatch: r.includeThreadMatch,
		ReturnRegions:      r.returnRegions,
		FastThreadMatch:    r.fastThreadMatch,
		ThreadMatchTopN:    r.threadMatchTopN,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(fields); err != nil {
		return "", fmt.Errorf("blueprint: encode fingerprint: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

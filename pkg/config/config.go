// Package config loads engine-wide defaults from the process environment
// (and, for local development, an optional .env file) and holds the
// engine's schema version.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/blang/semver"
	"github.com/joho/godotenv"
)

// EngineVersion is the schema version stamped onto every cache fingerprint
// (see pkg/blueprint). Bumping it invalidates every previously cached
// result without requiring the cache to be flushed by hand.
const EngineVersion = "1.0.0"

// ParsedEngineVersion parses EngineVersion once at init time; a malformed
// constant is a build-time defect, not a runtime condition.
var ParsedEngineVersion = semver.MustParse(EngineVersion)

// Config holds the engine's tunable defaults.
type Config struct {
	ResultCacheCapacity int
	ImageStoreCapacity  int
	DefaultMaxDim       int
	AbsoluteDimCap      int
	DefaultSeed         int64
	DefaultIterationCap int
}

// Defaults returns the engine's built-in defaults.
func Defaults() Config {
	return Config{
		ResultCacheCapacity: 20,
		ImageStoreCapacity:  64,
		DefaultMaxDim:       2048,
		AbsoluteDimCap:      8192,
		DefaultSeed:         42,
		DefaultIterationCap: 20,
	}
}

// LoadEnv optionally loads a .env file at path (ignored if it does not
// exist, mirroring godotenv.Load's common usage in development tooling),
// then overlays any recognized COLORWIZARD_* environment variables onto
// Defaults().
func LoadEnv(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: load .env: %w", err)
		}
	}

	cfg := Defaults()
	overlayInt(&cfg.ResultCacheCapacity, "COLORWIZARD_RESULT_CACHE_CAPACITY")
	overlayInt(&cfg.ImageStoreCapacity, "COLORWIZARD_IMAGE_STORE_CAPACITY")
	overlayInt(&cfg.DefaultMaxDim, "COLORWIZARD_DEFAULT_MAX_DIM")
	overlayInt(&cfg.AbsoluteDimCap, "COLORWIZARD_ABSOLUTE_DIM_CAP")
	overlayInt(&cfg.DefaultIterationCap, "COLORWIZARD_DEFAULT_ITERATION_CAP")
	overlayInt64(&cfg.DefaultSeed, "COLORWIZARD_DEFAULT_SEED")
	return cfg, nil
}

func overlayInt(dst *int, envVar string) {
	v, ok := os.LookupEnv(envVar)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func overlayInt64(dst *int64, envVar string) {
	v, ok := os.LookupEnv(envVar)
	if !ok {
		return
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		*dst = n
	}
}

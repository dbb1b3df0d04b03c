package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ResultCacheCapacity != 20 {
		t.Fatalf("expected default result cache capacity 20, got %d", cfg.ResultCacheCapacity)
	}
	if cfg.DefaultMaxDim != 2048 {
		t.Fatalf("expected default max dim 2048, got %d", cfg.DefaultMaxDim)
	}
}

func TestLoadEnvOverlaysRecognizedVars(t *testing.T) {
	os.Setenv("COLORWIZARD_RESULT_CACHE_CAPACITY", "7")
	defer os.Unsetenv("COLORWIZARD_RESULT_CACHE_CAPACITY")

	cfg, err := LoadEnv("")
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.ResultCacheCapacity != 7 {
		t.Fatalf("expected overlay to set 7, got %d", cfg.ResultCacheCapacity)
	}
}

func TestLoadEnvMissingDotEnvFileIsNotFatal(t *testing.T) {
	if _, err := LoadEnv("/does/not/exist/.env"); err != nil {
		t.Fatalf("expected missing .env file to be ignored, got %v", err)
	}
}

func TestEngineVersionParses(t *testing.T) {
	if ParsedEngineVersion.String() != EngineVersion {
		t.Fatalf("expected parsed version to round-trip, got %s", ParsedEngineVersion.String())
	}
}

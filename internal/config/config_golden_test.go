package config

import (
	"os"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// TestConfigDefaultsGoldenFile tests that our defaults match the golden file
func TestConfigDefaultsGoldenFile(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	goldenData, err := os.ReadFile("testdata/defaults.yaml")
	if err != nil {
		t.Fatalf("Failed to read golden defaults file: %v", err)
	}

	var goldenConfig Config
	if err := yaml.Unmarshal(goldenData, &goldenConfig); err != nil {
		t.Fatalf("Failed to parse golden config: %v", err)
	}

	testConfig := Default()

	if !reflect.DeepEqual(testConfig.Site, goldenConfig.Site) {
		t.Errorf("Site mismatch: got %+v, want %+v", testConfig.Site, goldenConfig.Site)
	}
	if !reflect.DeepEqual(testConfig.Server, goldenConfig.Server) {
		t.Errorf("Server mismatch: got %+v, want %+v", testConfig.Server, goldenConfig.Server)
	}
	if !reflect.DeepEqual(testConfig.Storage, goldenConfig.Storage) {
		t.Errorf("Storage mismatch: got %+v, want %+v", testConfig.Storage, goldenConfig.Storage)
	}
	if testConfig.Markdown != goldenConfig.Markdown {
		t.Errorf("Markdown mismatch: got %+v, want %+v", testConfig.Markdown, goldenConfig.Markdown)
	}
	if testConfig.Auth != goldenConfig.Auth {
		t.Errorf("Auth mismatch: got %+v, want %+v", testConfig.Auth, goldenConfig.Auth)
	}
	if testConfig.Logging != goldenConfig.Logging {
		t.Errorf("Logging mismatch: got %+v, want %+v", testConfig.Logging, goldenConfig.Logging)
	}
}

// TestGeneratedDefaultsRoundTrip makes sure the example config written by cmd/generate-config
// loads back into the same defaults.
func TestGeneratedDefaultsRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("Failed to marshal defaults: %v", err)
	}

	path := t.TempDir() + "/config.yaml"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	want := Default()
	if !reflect.DeepEqual(loaded, want) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", loaded, want)
	}
}

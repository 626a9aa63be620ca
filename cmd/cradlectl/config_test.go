package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSimulateRequestFromConfig(t *testing.T) {
	path := writeConfig(t, `{
		"policy": "feed-when-crying",
		"episodes": 8,
		"steps": 25,
		"seed": 42,
		"workers": 2
	}`)

	req, err := loadSimulateRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.Policy != "feed-when-crying" {
		t.Fatalf("policy = %s, want feed-when-crying", req.Policy)
	}
	if req.Episodes != 8 || req.Steps != 25 {
		t.Fatalf("episodes/steps = %d/%d, want 8/25", req.Episodes, req.Steps)
	}
	if req.Seed != 42 || req.Workers != 2 {
		t.Fatalf("seed/workers = %d/%d, want 42/2", req.Seed, req.Workers)
	}
	if req.Params != nil {
		t.Fatalf("expected nil params, got %+v", req.Params)
	}
}

func TestLoadSimulateRequestWithParamsOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"policy": "random",
		"random_feed_p": 0.25,
		"params": {
			"p_become_hungry": 0.3,
			"discount": 0.95
		}
	}`)

	req, err := loadSimulateRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if req.RandomFeedP != 0.25 {
		t.Fatalf("random feed p = %f, want 0.25", req.RandomFeedP)
	}
	if req.Params == nil {
		t.Fatal("expected params overrides")
	}
	if req.Params.PBecomeHungry != 0.3 || req.Params.Discount != 0.95 {
		t.Fatalf("unexpected params: %+v", req.Params)
	}
	// Untouched fields keep canonical values.
	if req.Params.RFeed != -5.0 || req.Params.PCryWhenHungry != 0.8 {
		t.Fatalf("expected canonical defaults for untouched params: %+v", req.Params)
	}
}

func TestLoadSimulateRequestMissingFile(t *testing.T) {
	if _, err := loadSimulateRequestFromConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadSimulateRequestInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"policy": `)
	if _, err := loadSimulateRequestFromConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

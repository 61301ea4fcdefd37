package main

import (
	"os"
	"path/filepath"
	"testing"

	"charrig/internal/config"
	"charrig/internal/world"
)

func writeOutputs(t *testing.T, dir string) []output {
	t.Helper()
	outputs, err := render(dir)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, out := range outputs {
		if err := os.WriteFile(filepath.Join(dir, out.Name), out.Data, 0644); err != nil {
			t.Fatalf("writing %s: %v", out.Name, err)
		}
	}
	return outputs
}

func TestRenderedFilesLoad(t *testing.T) {
	dir := t.TempDir()
	writeOutputs(t, dir)

	cfg, err := config.Load(filepath.Join(dir, "charrig.yaml"))
	if err != nil {
		t.Fatalf("Expected the written config to load, got %v", err)
	}
	if cfg.Zone.Path != filepath.Join(dir, "zone.yaml") {
		t.Errorf("Expected zone path next to the config, got %q", cfg.Zone.Path)
	}
	def := config.Default()
	if cfg.Timestep.Step != def.Timestep.Step {
		t.Errorf("Expected step %v, got %v", def.Timestep.Step, cfg.Timestep.Step)
	}
	if cfg.Character.Parameters != def.Character.Parameters {
		t.Errorf("Expected default tuning %+v, got %+v", def.Character.Parameters, cfg.Character.Parameters)
	}

	zone, err := world.LoadZone(cfg.Zone.Path)
	if err != nil {
		t.Fatalf("Expected the written zone to load, got %v", err)
	}
	want, _ := world.DefaultZone()
	if len(zone.Objects) != len(want.Objects) {
		t.Errorf("Expected %d objects, got %d", len(want.Objects), len(zone.Objects))
	}
}

func TestNeedsRegeneration(t *testing.T) {
	dir := t.TempDir()
	outputs := writeOutputs(t, dir)
	path := filepath.Join(dir, outputs[0].Name)

	if needsRegeneration(outputs[0].Data, path) {
		t.Error("Expected unchanged content to be skipped")
	}
	if !needsRegeneration([]byte("window: {}\n"), path) {
		t.Error("Expected changed content to be regenerated")
	}
	if !needsRegeneration(outputs[0].Data, filepath.Join(dir, "missing.yaml")) {
		t.Error("Expected a missing file to be generated")
	}
}

// Command gen-config writes the default config and test zone as editable
// YAML files, so a run can be tuned with --config and zone.path.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"charrig/internal/config"
	"charrig/internal/world"

	"gopkg.in/yaml.v3"
)

type output struct {
	Name string
	Data []byte
}

func main() {
	outputDir := flag.String("out", "configs", "Directory to write charrig.yaml and zone.yaml into")
	force := flag.Bool("force", false, "Overwrite files even when unchanged")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Printf("❌ Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	outputs, err := render(*outputDir)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🔧 Writing defaults to %s/...\n", *outputDir)

	generatedCount := 0
	skippedCount := 0
	for _, out := range outputs {
		path := filepath.Join(*outputDir, out.Name)
		if !*force && !needsRegeneration(out.Data, path) {
			skippedCount++
			continue
		}
		if err := os.WriteFile(path, out.Data, 0644); err != nil {
			fmt.Printf("   ✗ %s: %v\n", out.Name, err)
			continue
		}
		fmt.Printf("   ✓ %s\n", out.Name)
		generatedCount++
	}

	if skippedCount > 0 {
		fmt.Printf("✅ Wrote %d, skipped %d (unchanged) in %s\n", generatedCount, skippedCount, *outputDir)
	} else {
		fmt.Printf("✅ Wrote %d file(s) in %s\n", generatedCount, *outputDir)
	}
}

// render returns the default config, pointed at the zone file written
// next to it, and the default zone.
func render(outputDir string) ([]output, error) {
	cfg := config.Default()
	cfg.Zone.Path = filepath.Join(outputDir, "zone.yaml")
	cfgData, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}

	zone, err := world.DefaultZone()
	if err != nil {
		return nil, fmt.Errorf("failed to load default zone: %w", err)
	}
	zoneData, err := yaml.Marshal(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zone: %w", err)
	}

	return []output{
		{Name: "charrig.yaml", Data: cfgData},
		{Name: "zone.yaml", Data: zoneData},
	}, nil
}

// needsRegeneration reports whether the file at path differs from content.
func needsRegeneration(content []byte, path string) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return true // No file yet
	}
	want := sha256.Sum256(content)
	got := sha256.Sum256(existing)
	return !bytes.Equal(want[:], got[:])
}

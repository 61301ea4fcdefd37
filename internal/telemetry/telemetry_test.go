package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charrig/internal/locomotion"
)

func TestTraceHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, 1)
	for i := 0; i < 3; i++ {
		if err := tr.Write(Sample{Tick: i, Phase: "airborne", Y: 10 - float64(i)}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "tick,phase,ground,x,y,z") {
		t.Errorf("Expected a CSV header, got %q", lines[0])
	}
	if strings.Count(buf.String(), "tick,") != 1 {
		t.Error("Expected exactly one header")
	}

	samples, err := ReadSamples(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadSamples failed: %v", err)
	}
	if len(samples) != 3 || samples[2].Y != 8 {
		t.Errorf("Expected 3 samples ending at y=8, got %+v", samples)
	}
}

func TestTraceEvery(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTrace(&buf, 4)
	for i := 0; i < 10; i++ {
		if err := tr.Write(Sample{Tick: i}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	samples, err := ReadSamples(&buf)
	if err != nil {
		t.Fatalf("ReadSamples failed: %v", err)
	}
	if len(samples) != 3 {
		t.Errorf("Expected ticks 0, 4 and 8, got %d samples", len(samples))
	}
}

func TestNilTrace(t *testing.T) {
	var tr *Trace
	if err := tr.Write(Sample{}); err != nil {
		t.Errorf("Expected nil trace to discard, got %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Expected nil trace close to succeed, got %v", err)
	}
	tr, err := CreateTrace("", 1)
	if tr != nil || err != nil {
		t.Errorf("Expected disabled trace for empty path, got %v %v", tr, err)
	}
}

func TestCreateTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "trace.csv")
	tr, err := CreateTrace(path, 1)
	if err != nil {
		t.Fatalf("CreateTrace failed: %v", err)
	}
	if err := tr.Write(Sample{Tick: 0, Phase: "on-stage"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "on-stage") {
		t.Errorf("Expected the sample in the file, got %q", data)
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Observe(Sample{Phase: "airborne", Vertical: -20})
	s.Observe(Sample{Phase: "on-stage", HorizontalSpeed: 8})
	s.Record(locomotion.Transition{Kind: locomotion.Landed})
	s.Record(locomotion.Transition{Kind: locomotion.Jumped})
	s.Record(locomotion.Transition{Kind: locomotion.Jumped})

	if s.Ticks != 2 || s.AirborneTicks != 1 {
		t.Errorf("Expected 2 ticks with 1 airborne, got %+v", s)
	}
	if s.Jumps != 2 || s.Landings != 1 {
		t.Errorf("Expected 2 jumps and 1 landing, got %+v", s)
	}
	if s.MaxFallSpeed != 20 || s.MaxSpeed != 8 || s.LastPhase != "on-stage" {
		t.Errorf("Expected extrema 20/8 and last phase on-stage, got %+v", s)
	}
}

// Package telemetry records per-tick samples of the rig as CSV and keeps
// a running summary of phase transitions.
package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Sample is one fixed tick of rig state.
type Sample struct {
	Tick            int     `csv:"tick"`
	Phase           string  `csv:"phase"`
	Ground          string  `csv:"ground"` // empty while airborne
	X               float64 `csv:"x"`
	Y               float64 `csv:"y"`
	Z               float64 `csv:"z"`
	UpX             float64 `csv:"up_x"`
	UpY             float64 `csv:"up_y"`
	UpZ             float64 `csv:"up_z"`
	HorizontalSpeed float64 `csv:"horizontal_speed"`
	Vertical        float64 `csv:"vertical_velocity"`
	CameraDistance  float64 `csv:"camera_distance"`
	CameraRotation  float64 `csv:"camera_rotation"`
	CameraHeight    float64 `csv:"camera_height"`
	CameraRoll      float64 `csv:"camera_roll"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.String("phase", s.Phase),
		slog.String("ground", s.Ground),
		slog.Float64("x", s.X),
		slog.Float64("y", s.Y),
		slog.Float64("z", s.Z),
		slog.Float64("speed", s.HorizontalSpeed),
		slog.Float64("vertical", s.Vertical),
	)
}

// Trace writes samples as CSV. A nil *Trace discards everything.
type Trace struct {
	out           io.Writer
	closer        io.Closer
	every         int
	headerWritten bool
}

// NewTrace writes every n-th tick to out.
func NewTrace(out io.Writer, every int) *Trace {
	if every < 1 {
		every = 1
	}
	return &Trace{out: out, every: every}
}

// CreateTrace creates the CSV file at path. It returns nil when path is
// empty.
func CreateTrace(path string, every int) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	t := NewTrace(f, every)
	t.closer = f
	return t, nil
}

// Write records s if its tick is due.
func (t *Trace) Write(s Sample) error {
	if t == nil || s.Tick%t.every != 0 {
		return nil
	}
	records := []Sample{s}

	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		t.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, t.out); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the trace owns one.
func (t *Trace) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

// ReadSamples parses a trace written by Trace.
func ReadSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return samples, nil
}

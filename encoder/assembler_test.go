package encoder

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// normalizedMatrix builds a non-constant feature matrix roughly
// centered on zero, standing in for normalizer output.
func normalizedMatrix(rows, cols int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, math.Sin(float64(i)*0.37+float64(j)*1.13))
		}
	}
	return m
}

func TestNewFrameAssembler_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  AssemblerConfig
	}{
		{"zero width", AssemblerConfig{Width: 0, ResolutionFloor: 0.001}},
		{"zero floor", AssemblerConfig{Width: 512, ResolutionFloor: 0}},
		{"negative floor", AssemblerConfig{Width: 512, ResolutionFloor: -0.001}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewFrameAssembler(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewFrameAssembler() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestAssemble_FrameShapeAndDensity(t *testing.T) {
	t.Parallel()

	fa, err := NewFrameAssembler(AssemblerConfig{Width: 512, ResolutionFloor: 0.001})
	if err != nil {
		t.Fatalf("NewFrameAssembler() error = %v", err)
	}

	frames, err := fa.Assemble(normalizedMatrix(100, 16))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(frames) != 100 {
		t.Fatalf("Assemble() frames = %d, want 100", len(frames))
	}

	for i, frame := range frames {
		if len(frame) != 16*512 {
			t.Fatalf("frame %d length = %d, want 8192", i, len(frame))
		}
		if got := frame.ActiveCount(); got != 16*21 {
			t.Errorf("frame %d active bits = %d, want 336", i, got)
		}
	}
}

func TestAssemble_ResolutionFloorOnNearConstantInput(t *testing.T) {
	t.Parallel()

	fa, err := NewFrameAssembler(AssemblerConfig{Width: 64, ResolutionFloor: 0.001})
	if err != nil {
		t.Fatalf("NewFrameAssembler() error = %v", err)
	}

	// Dynamic range 1e-9: (max-min)/1024 collapses far below the floor,
	// which must keep the derived resolution positive.
	m := mat.NewDense(4, 4, nil)
	m.Set(0, 0, 1e-9)

	frames, err := fa.Assemble(m)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for i, frame := range frames {
		if got := frame.ActiveCount(); got != 4*21 {
			t.Errorf("frame %d active bits = %d, want 84", i, got)
		}
	}
}

func TestAssemble_WorkersPreserveFrameOrder(t *testing.T) {
	t.Parallel()

	features := normalizedMatrix(200, 16)

	serial, err := NewFrameAssembler(AssemblerConfig{Width: 128, ResolutionFloor: 0.001, Workers: 1})
	if err != nil {
		t.Fatalf("NewFrameAssembler() error = %v", err)
	}
	parallel, err := NewFrameAssembler(AssemblerConfig{Width: 128, ResolutionFloor: 0.001, Workers: 8})
	if err != nil {
		t.Fatalf("NewFrameAssembler() error = %v", err)
	}

	want, err := serial.Assemble(features)
	if err != nil {
		t.Fatalf("serial Assemble() error = %v", err)
	}
	got, err := parallel.Assemble(features)
	if err != nil {
		t.Fatalf("parallel Assemble() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("parallel frames = %d, serial = %d", len(got), len(want))
	}
	for i := range want {
		for k := range want[i] {
			if got[i][k] != want[i][k] {
				t.Fatalf("parallel output differs from serial at frame %d bit %d", i, k)
			}
		}
	}
}

func TestAssemble_EmptyMatrix(t *testing.T) {
	t.Parallel()

	fa, err := NewFrameAssembler(AssemblerConfig{Width: 64, ResolutionFloor: 0.001})
	if err != nil {
		t.Fatalf("NewFrameAssembler() error = %v", err)
	}

	if _, err := fa.Assemble(nil); err == nil {
		t.Error("Assemble(nil) expected error, got nil")
	}
}

func BenchmarkAssemble(b *testing.B) {
	fa, _ := NewFrameAssembler(AssemblerConfig{Width: 512, ResolutionFloor: 0.001, Workers: 4})
	features := normalizedMatrix(100, 16)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = fa.Assemble(features)
	}
}

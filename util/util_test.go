package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/matt-g-everett/cssanim/timing"
)

func TestGenerateLut(t *testing.T) {
	tests := []struct {
		name   string
		fn     timing.Function
		length int
		want   []float64
	}{
		{"linear", timing.Linear{}, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"single", timing.Linear{}, 1, []float64{1}},
		{"empty", timing.Linear{}, 0, nil},
		{"steps", timing.Steps{Count: 2}, 5, []float64{0, 0, 0.5, 0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateLut(tt.fn, tt.length)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("GenerateLut (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateMirroredLut(t *testing.T) {
	got := GenerateMirroredLut(timing.Linear{}, 8)
	want := []float64{0, 0.25, 0.5, 0.75, 0.75, 0.5, 0.25, 0}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("GenerateMirroredLut (-want +got):\n%s", diff)
	}
}

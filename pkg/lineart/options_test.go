package lineart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClampForcesRanges(t *testing.T) {
	got := Options{Threshold: 400, BlurPasses: -1, Thickness: 9, MaxDim: 0}.Clamp()
	want := Options{Threshold: 255, BlurPasses: 0, Thickness: 2, MaxDim: DefaultMaxDim}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("clamped options mismatch (-want +got):\n%s", diff)
	}
}

func TestClampKeepsValidValues(t *testing.T) {
	o := Options{Threshold: 128, BlurPasses: 2, Thickness: 1, MaxDim: 3000}
	if diff := cmp.Diff(o, o.Clamp()); diff != "" {
		t.Fatalf("valid options changed by Clamp (-want +got):\n%s", diff)
	}
}

func TestClampNegativeMaxDim(t *testing.T) {
	got := Options{Threshold: 50, BlurPasses: 1, Thickness: 1, MaxDim: -5}.Clamp()
	if got.MaxDim != DefaultMaxDim {
		t.Fatalf("expected MaxDim %d, got %d", DefaultMaxDim, got.MaxDim)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	if diff := cmp.Diff(d, d.Clamp()); diff != "" {
		t.Fatalf("Defaults are out of range (-want +got):\n%s", diff)
	}
}

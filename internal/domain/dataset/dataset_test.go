package dataset

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew_ColumnNameMismatch(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := New("x", m, []string{"a"}); err == nil {
		t.Fatal("expected error for name/column mismatch")
	}
	if _, err := New("x", nil, nil); err == nil {
		t.Fatal("expected error for nil matrix")
	}
}

func TestNew_CopiesNames(t *testing.T) {
	names := []string{"a", "b"}
	d, err := New("x", mat.NewDense(1, 2, []float64{1, 2}), names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names[0] = "mutated"
	if d.FeatureNames()[0] != "a" {
		t.Error("dataset should not alias caller slice")
	}
	got := d.FeatureNames()
	got[1] = "mutated"
	if d.FeatureNames()[1] != "b" {
		t.Error("FeatureNames should return a copy")
	}
	if d.Samples() != 1 || d.Features() != 2 {
		t.Errorf("unexpected dims %dx%d", d.Samples(), d.Features())
	}
}

func TestSource_IsUploaded(t *testing.T) {
	tests := []struct {
		src  Source
		want bool
	}{
		{Source{Name: "iris"}, false},
		{Source{Name: "iris", Uploaded: []byte(`[{"a":1}]`)}, false},
		{Source{Name: UploadedName}, true},
		{Source{Uploaded: []byte(`[{"a":1}]`)}, true},
		{Source{}, false},
	}
	for _, tc := range tests {
		if got := tc.src.IsUploaded(); got != tc.want {
			t.Errorf("%+v: got %v, want %v", tc.src, got, tc.want)
		}
	}
}

package result

import (
	"errors"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

func TestAssemble_OK(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	centers := mat.NewDense(2, 2, []float64{1, 2, 4, 5})
	q := &QualityReport{DaviesBouldin: 0.5, Silhouette: 0.7}

	res, err := Assemble(algorithm.KMeans, data, []int{0, 1, 1}, []string{"a", "b"}, centers, q, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows()) != 3 || len(res.Rows()[0]) != 2 {
		t.Errorf("unexpected rows %v", res.Rows())
	}
	if len(res.CenterRows()) != 2 {
		t.Errorf("unexpected centers %v", res.CenterRows())
	}
	if res.Quality.Silhouette != 0.7 {
		t.Errorf("unexpected quality %+v", res.Quality)
	}
}

func TestAssemble_NoCenters(t *testing.T) {
	data := mat.NewDense(2, 1, []float64{1, 2})
	res, err := Assemble(algorithm.GMM, data, []int{0, 1}, []string{"a"}, nil, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CenterRows() != nil {
		t.Error("expected nil centers")
	}
}

func TestAssemble_Mismatches(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	tests := []struct {
		name    string
		data    *mat.Dense
		labels  []int
		names   []string
		centers *mat.Dense
	}{
		{"nil data", nil, []int{0, 1}, []string{"a", "b"}, nil},
		{"names", data, []int{0, 1}, []string{"a"}, nil},
		{"labels", data, []int{0}, []string{"a", "b"}, nil},
		{"centers width", data, []int{0, 1}, []string{"a", "b"}, mat.NewDense(2, 3, nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assemble(algorithm.KMeans, tc.data, tc.labels, tc.names, tc.centers, nil, 0)
			if !errors.Is(err, domain.ErrAssembly) {
				t.Fatalf("expected ErrAssembly, got %v", err)
			}
		})
	}
}

func TestAssemble_CopiesLabels(t *testing.T) {
	labels := []int{0, 1}
	res, err := Assemble(algorithm.GMM, mat.NewDense(2, 1, []float64{1, 2}), labels, []string{"a"}, nil, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	labels[0] = 9
	if res.Labels[0] != 0 {
		t.Error("result should not alias caller labels")
	}
}

package cluster

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

func twoGroups() *mat.Dense {
	return mat.NewDense(6, 2, []float64{
		0, 0,
		0.1, 0,
		0, 0.1,
		5, 5,
		5.1, 5,
		5, 5.1,
	})
}

func TestNew_SelectsAlgorithm(t *testing.T) {
	km, err := New(algorithm.DefaultKMeans())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km.Name() != algorithm.KMeans {
		t.Errorf("expected kmeans, got %s", km.Name())
	}

	gm, err := New(algorithm.DefaultGMM())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gm.Name() != algorithm.GMM {
		t.Errorf("expected gmm, got %s", gm.Name())
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, domain.ErrFit) {
		t.Fatalf("expected ErrFit, got %v", err)
	}
}

func TestFitPredict_KMeansReturnsCenters(t *testing.T) {
	cfg := algorithm.DefaultKMeans()
	cfg.K = 2
	a, _ := New(cfg)

	fit, err := a.FitPredict(twoGroups())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fit.Labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(fit.Labels))
	}
	if fit.Labels[0] == fit.Labels[3] {
		t.Errorf("groups share label %d", fit.Labels[0])
	}
	if fit.Centers == nil {
		t.Fatal("expected centers")
	}
	if r, c := fit.Centers.Dims(); r != 2 || c != 2 {
		t.Errorf("expected 2x2 centers, got %dx%d", r, c)
	}
}

func TestFitPredict_GMMHasNoCenters(t *testing.T) {
	cfg := algorithm.DefaultGMM()
	cfg.K = 2
	cfg.CovarianceType = algorithm.CovDiag
	a, _ := New(cfg)

	fit, err := a.FitPredict(twoGroups())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fit.Labels) != 6 {
		t.Fatalf("expected 6 labels, got %d", len(fit.Labels))
	}
	if fit.Centers != nil {
		t.Error("expected nil centers for gmm")
	}
}

func TestFitPredict_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  algorithm.Config
		x    mat.Matrix
		msg  string
	}{
		{
			name: "kmeans too few rows",
			cfg:  algorithm.KMeansConfig{K: 5, Init: algorithm.InitKMeansPlusPlus, MaxIter: 100, Seed: 42},
			x:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			msg:  "n_samples=3 should be >= n_clusters=5",
		},
		{
			name: "gmm too few rows",
			cfg:  algorithm.GMMConfig{K: 4, CovarianceType: algorithm.CovFull, MaxIter: 100, Seed: 42},
			x:    mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			msg:  "n_samples=2 should be >= n_clusters=4",
		},
		{
			name: "no data",
			cfg:  algorithm.DefaultKMeans(),
			x:    nil,
			msg:  "no data to cluster",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = a.FitPredict(tt.x)
			if !errors.Is(err, domain.ErrFit) {
				t.Fatalf("expected ErrFit, got %v", err)
			}
			if err.Error() != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, err.Error())
			}
		})
	}
}

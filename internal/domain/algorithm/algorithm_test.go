package algorithm

import "testing"

func TestAlgorithm_IsValid(t *testing.T) {
	tests := []struct {
		a    Algorithm
		want bool
	}{
		{KMeans, true},
		{GMM, true},
		{"dbscan", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := tc.a.IsValid(); got != tc.want {
			t.Errorf("Algorithm(%q).IsValid() = %v, want %v", tc.a, got, tc.want)
		}
	}
}

func TestCovarianceType_IsValid(t *testing.T) {
	for _, c := range []CovarianceType{CovFull, CovTied, CovDiag, CovSpherical} {
		if !c.IsValid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if CovarianceType("block").IsValid() {
		t.Error("block should be invalid")
	}
}

func TestInit_IsValid(t *testing.T) {
	if !InitKMeansPlusPlus.IsValid() || !InitRandom.IsValid() {
		t.Error("expected both strategies to be valid")
	}
	if Init("kmeans||").IsValid() {
		t.Error("unexpected valid init")
	}
}

func TestDefaults(t *testing.T) {
	km := DefaultKMeans()
	if km.Algorithm() != KMeans || km.Clusters() != 3 || km.MaxIter != 100 || km.Seed != 42 || km.Init != InitKMeansPlusPlus {
		t.Errorf("unexpected kmeans defaults: %+v", km)
	}
	g := DefaultGMM()
	if g.Algorithm() != GMM || g.Clusters() != 3 || g.CovarianceType != CovFull {
		t.Errorf("unexpected gmm defaults: %+v", g)
	}
}

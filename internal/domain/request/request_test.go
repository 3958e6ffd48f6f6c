package request

import (
	"testing"

	"github.com/kailas-cloud/clusterlab/internal/domain/params"
)

func TestNew_Defaults(t *testing.T) {
	r := New("iris", nil, "", nil, nil)
	if r.Algorithm() != "kmeans" {
		t.Errorf("expected kmeans default, got %q", r.Algorithm())
	}
	if !r.Standardize() {
		t.Error("expected standardize default true")
	}
	if r.Params() == nil {
		t.Error("expected non-nil params")
	}
	if r.Source().Name != "iris" {
		t.Errorf("unexpected source %+v", r.Source())
	}
}

func TestNew_Explicit(t *testing.T) {
	off := false
	p := params.Params{params.NClusters: 2}
	r := New("", []byte(`[{"a":1}]`), "gmm", p, &off)
	if r.Algorithm() != "gmm" {
		t.Errorf("got %q", r.Algorithm())
	}
	if r.Standardize() {
		t.Error("expected standardize false")
	}
	if !r.Source().IsUploaded() {
		t.Error("expected uploaded source")
	}
	if r.Params()[params.NClusters] != 2 {
		t.Errorf("unexpected params %v", r.Params())
	}
}

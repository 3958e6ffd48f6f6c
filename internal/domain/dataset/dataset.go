package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// UploadedName selects caller-supplied records instead of a catalog entry.
const UploadedName = "uploaded"

// Dataset is a numeric feature matrix with its column labels.
// Rows are samples; column order matches FeatureNames.
type Dataset struct {
	name         string
	matrix       *mat.Dense
	featureNames []string
}

// New creates a dataset, checking that the name count matches the column count.
func New(name string, m *mat.Dense, featureNames []string) (Dataset, error) {
	if m == nil {
		return Dataset{}, fmt.Errorf("dataset %q: nil matrix", name)
	}
	_, c := m.Dims()
	if c != len(featureNames) {
		return Dataset{}, fmt.Errorf("dataset %q: %d columns but %d feature names", name, c, len(featureNames))
	}
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return Dataset{name: name, matrix: m, featureNames: names}, nil
}

// Name returns the catalog name or UploadedName.
func (d Dataset) Name() string { return d.name }

// Matrix returns the feature matrix. Callers must not mutate it.
func (d Dataset) Matrix() *mat.Dense { return d.matrix }

// FeatureNames returns a copy of the column labels.
func (d Dataset) FeatureNames() []string {
	out := make([]string, len(d.featureNames))
	copy(out, d.featureNames)
	return out
}

// Samples returns the row count.
func (d Dataset) Samples() int {
	r, _ := d.matrix.Dims()
	return r
}

// Features returns the column count.
func (d Dataset) Features() int {
	_, c := d.matrix.Dims()
	return c
}

// Source describes where a dataset comes from: a catalog name or uploaded records.
type Source struct {
	// Name is a catalog name, UploadedName, or empty.
	Name string
	// Uploaded holds a raw JSON array of flat objects.
	Uploaded []byte
}

// IsUploaded reports whether the source resolves to caller-supplied records.
func (s Source) IsUploaded() bool {
	return s.Name == UploadedName || (s.Name == "" && len(s.Uploaded) > 0)
}

// Info describes a catalog entry.
type Info struct {
	Name         string
	Title        string
	Description  string
	Samples      int
	FeatureNames []string
}

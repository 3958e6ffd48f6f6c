package dataset

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
)

//go:embed data/*.csv
var catalogFS embed.FS

// catalogEntry is a built-in reference dataset.
type catalogEntry struct {
	info   domds.Info
	file   string
	matrix *mat.Dense
}

// builtins lists the reference datasets in display order.
var builtins = []catalogEntry{
	{
		info: domds.Info{
			Name:        "iris",
			Title:       "Iris",
			Description: "150 samples of iris flowers with 4 features",
		},
		file: "data/iris.csv",
	},
	{
		info: domds.Info{
			Name:        "wine",
			Title:       "Wine",
			Description: "178 wine samples with 13 chemical features",
		},
		file: "data/wine.csv",
	},
}

// loadCatalog parses every embedded dataset once. The result is read-only.
func loadCatalog() (map[string]catalogEntry, []string, error) {
	entries := make(map[string]catalogEntry, len(builtins))
	order := make([]string, 0, len(builtins))
	for _, e := range builtins {
		raw, err := catalogFS.ReadFile(e.file)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", e.file, err)
		}
		m, names, err := parseCSV(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", e.file, err)
		}
		e.matrix = m
		e.info.FeatureNames = names
		e.info.Samples, _ = m.Dims()
		entries[e.info.Name] = e
		order = append(order, e.info.Name)
	}
	return entries, order, nil
}

// parseCSV reads a headed, fully numeric CSV into a dense matrix.
func parseCSV(raw []byte) (*mat.Dense, []string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("csv has no data rows")
	}

	header := records[0]
	rows := records[1:]
	cols := len(header)
	data := make([]float64, 0, len(rows)*cols)
	for i, rec := range rows {
		for j, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %q: %w", i+1, header[j], err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(rows), cols, data), header, nil
}

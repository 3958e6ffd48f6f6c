// Package quality scores a labeling without ground truth.
package quality

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/result"
)

// closeToZero mirrors numpy's allclose(x, 0) absolute tolerance.
const closeToZero = 1e-8

// Evaluate computes the Davies-Bouldin index and the mean silhouette
// coefficient of labels over the rows of x, using Euclidean distance.
// Both are defined only for 2 to n-1 distinct labels.
func Evaluate(x mat.Matrix, labels []int) (result.QualityReport, error) {
	rows, groups, err := prepare(x, labels)
	if err != nil {
		return result.QualityReport{}, err
	}
	return result.QualityReport{
		DaviesBouldin: daviesBouldin(rows, groups),
		Silhouette:    silhouette(rows, groups),
	}, nil
}

// DaviesBouldin returns the average similarity of each cluster with its most
// similar cluster. Lower is better; 0 is the minimum.
func DaviesBouldin(x mat.Matrix, labels []int) (float64, error) {
	rows, groups, err := prepare(x, labels)
	if err != nil {
		return 0, err
	}
	return daviesBouldin(rows, groups), nil
}

// Silhouette returns the mean silhouette coefficient in [-1, 1].
func Silhouette(x mat.Matrix, labels []int) (float64, error) {
	rows, groups, err := prepare(x, labels)
	if err != nil {
		return 0, err
	}
	return silhouette(rows, groups), nil
}

// prepare checks the label count and groups row indices by label in order of
// first appearance.
func prepare(x mat.Matrix, labels []int) ([][]float64, [][]int, error) {
	if x == nil {
		return nil, nil, domain.NewEvaluationError("no data to evaluate")
	}
	n, _ := x.Dims()
	if n != len(labels) {
		return nil, nil, domain.NewEvaluationError(
			"found %d samples but %d labels", n, len(labels))
	}

	index := make(map[int]int)
	var groups [][]int
	for i, l := range labels {
		g, ok := index[l]
		if !ok {
			g = len(groups)
			index[l] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	if k := len(groups); k < 2 || k > n-1 {
		return nil, nil, domain.NewEvaluationError(
			"number of labels is %d; valid values are 2 to n_samples - 1 (inclusive)", k)
	}

	rows := make([][]float64, n)
	for i := range n {
		rows[i] = mat.Row(nil, i, x)
	}
	return rows, groups, nil
}

func daviesBouldin(rows [][]float64, groups [][]int) float64 {
	k := len(groups)
	d := len(rows[0])

	centroids := make([][]float64, k)
	intra := make([]float64, k)
	for c, members := range groups {
		ctr := make([]float64, d)
		for _, i := range members {
			floats.Add(ctr, rows[i])
		}
		floats.Scale(1/float64(len(members)), ctr)
		centroids[c] = ctr

		var s float64
		for _, i := range members {
			s += floats.Distance(rows[i], ctr, 2)
		}
		intra[c] = s / float64(len(members))
	}

	between := make([][]float64, k)
	allZero := true
	for a := range k {
		between[a] = make([]float64, k)
		for b := range k {
			between[a][b] = floats.Distance(centroids[a], centroids[b], 2)
			if between[a][b] > closeToZero {
				allZero = false
			}
		}
	}
	if allZero || floats.Norm(intra, math.Inf(1)) <= closeToZero {
		return 0
	}

	var total float64
	for a := range k {
		var worst float64
		for b := range k {
			if a == b || between[a][b] == 0 {
				continue
			}
			worst = math.Max(worst, (intra[a]+intra[b])/between[a][b])
		}
		total += worst
	}
	return total / float64(k)
}

func silhouette(rows [][]float64, groups [][]int) float64 {
	n := len(rows)
	k := len(groups)
	owner := make([]int, n)
	for c, members := range groups {
		for _, i := range members {
			owner[i] = c
		}
	}

	sums := make([]float64, k)
	var total float64
	for i, r := range rows {
		for c := range sums {
			sums[c] = 0
		}
		for j, o := range rows {
			sums[owner[j]] += floats.Distance(r, o, 2)
		}

		own := owner[i]
		size := len(groups[own])
		if size == 1 {
			continue
		}
		a := sums[own] / float64(size-1)
		b := math.Inf(1)
		for c, s := range sums {
			if c != own {
				b = math.Min(b, s/float64(len(groups[c])))
			}
		}
		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(n)
}

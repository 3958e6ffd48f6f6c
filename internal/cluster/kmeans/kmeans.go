// Package kmeans implements Lloyd's k-means with k-means++ or random seeding.
package kmeans

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

const (
	// relTol scales the mean column variance into the centre-shift tolerance.
	relTol = 1e-4
	// randomRestarts is the number of runs for random seeding; k-means++ runs once.
	randomRestarts = 10
)

// ErrTooFewSamples is returned when there are fewer rows than clusters.
var ErrTooFewSamples = errors.New("fewer samples than clusters")

// Model is a fitted k-means partition.
type Model struct {
	Labels     []int
	Centers    *mat.Dense
	Inertia    float64
	Iterations int
	Converged  bool
}

// KMeans fits centroid partitions.
type KMeans struct {
	k       int
	init    algorithm.Init
	maxIter int
	nInit   int
	seed    int64
}

// New creates a k-means fitter from a validated configuration.
func New(cfg algorithm.KMeansConfig) *KMeans {
	nInit := 1
	if cfg.Init == algorithm.InitRandom {
		nInit = randomRestarts
	}
	return &KMeans{
		k:       cfg.K,
		init:    cfg.Init,
		maxIter: cfg.MaxIter,
		nInit:   nInit,
		seed:    cfg.Seed,
	}
}

// WithRestarts overrides the number of independent runs.
func (km *KMeans) WithRestarts(n int) *KMeans {
	if n > 0 {
		km.nInit = n
	}
	return km
}

// Fit partitions the rows of x. The best of nInit runs by inertia is kept.
// Results are deterministic for a fixed seed.
func (km *KMeans) Fit(x mat.Matrix) (Model, error) {
	rows := denseRows(x)
	n := len(rows)
	if n < km.k {
		return Model{}, ErrTooFewSamples
	}

	rng := rand.New(rand.NewPCG(uint64(km.seed), uint64(km.seed)^0x9e3779b97f4a7c15))
	tol := tolerance(x)

	var best Model
	best.Inertia = math.Inf(1)
	for range km.nInit {
		var centers [][]float64
		if km.init == algorithm.InitRandom {
			centers = randomCenters(rows, km.k, rng)
		} else {
			centers = plusPlusCenters(rows, km.k, rng)
		}
		m := lloyd(rows, centers, km.maxIter, tol)
		if m.Inertia < best.Inertia {
			best = m
		}
	}
	return best, nil
}

// tolerance returns relTol times the mean per-column variance.
func tolerance(x mat.Matrix) float64 {
	r, c := x.Dims()
	col := make([]float64, r)
	var sum float64
	for j := range c {
		mat.Col(col, j, x)
		_, v := stat.PopMeanVariance(col, nil)
		sum += v
	}
	return relTol * sum / float64(c)
}

// lloyd runs assignment/update rounds until labels stop changing,
// the squared centre shift falls to tol, or maxIter is reached.
func lloyd(rows [][]float64, centers [][]float64, maxIter int, tol float64) Model {
	n := len(rows)
	k := len(centers)
	d := len(rows[0])

	labels := make([]int, n)
	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}
	dists := make([]float64, n)
	next := newCenters(k, d)
	counts := make([]int, k)

	converged := false
	strict := false
	iter := 0
	for iter < maxIter {
		iter++
		assign(rows, centers, labels, dists)
		update(rows, labels, dists, next, counts)

		var shift float64
		for c := range k {
			shift += sqDist(centers[c], next[c])
			copy(centers[c], next[c])
		}

		if equalLabels(labels, prev) {
			converged, strict = true, true
			break
		}
		if shift <= tol {
			converged = true
			break
		}
		copy(prev, labels)
	}
	if !strict {
		// Final assignment so labels agree with the returned centres.
		assign(rows, centers, labels, dists)
	}

	return Model{
		Labels:     labels,
		Centers:    toDense(centers),
		Inertia:    floats.Sum(dists),
		Iterations: iter,
		Converged:  converged,
	}
}

// assign labels each row with its nearest centre and records the squared distance.
func assign(rows, centers [][]float64, labels []int, dists []float64) {
	for i, r := range rows {
		best, bestD := 0, math.Inf(1)
		for c, ctr := range centers {
			if dd := sqDist(r, ctr); dd < bestD {
				best, bestD = c, dd
			}
		}
		labels[i] = best
		dists[i] = bestD
	}
}

// update recomputes centres as label means. Empty clusters take the rows
// farthest from their current centres.
func update(rows [][]float64, labels []int, dists []float64, next [][]float64, counts []int) {
	for c := range next {
		for j := range next[c] {
			next[c][j] = 0
		}
		counts[c] = 0
	}
	for i, r := range rows {
		floats.Add(next[labels[i]], r)
		counts[labels[i]]++
	}

	var empty []int
	for c := range next {
		if counts[c] == 0 {
			empty = append(empty, c)
			continue
		}
		floats.Scale(1/float64(counts[c]), next[c])
	}
	if len(empty) == 0 {
		return
	}

	far := make([]int, len(rows))
	for i := range far {
		far[i] = i
	}
	sort.SliceStable(far, func(a, b int) bool { return dists[far[a]] > dists[far[b]] })
	for i, c := range empty {
		copy(next[c], rows[far[i]])
	}
}

// plusPlusCenters performs greedy k-means++ seeding with 2+ln(k) local trials.
func plusPlusCenters(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	trials := 2 + int(math.Log(float64(k)))

	centers := make([][]float64, 0, k)
	first := rng.IntN(n)
	centers = append(centers, clone(rows[first]))

	closest := make([]float64, n)
	for i, r := range rows {
		closest[i] = sqDist(r, centers[0])
	}
	pot := floats.Sum(closest)

	cum := make([]float64, n)
	cand := make([]float64, n)
	bestCand := make([]float64, n)
	for len(centers) < k {
		floats.CumSum(cum, closest)

		bestIdx, bestPot := -1, math.Inf(1)
		for range trials {
			idx := sort.SearchFloat64s(cum, rng.Float64()*pot)
			if idx >= n {
				idx = n - 1
			}
			for i, r := range rows {
				cand[i] = math.Min(closest[i], sqDist(r, rows[idx]))
			}
			if p := floats.Sum(cand); p < bestPot {
				bestIdx, bestPot = idx, p
				copy(bestCand, cand)
			}
		}

		centers = append(centers, clone(rows[bestIdx]))
		copy(closest, bestCand)
		pot = bestPot
	}
	return centers
}

// randomCenters picks k distinct rows uniformly.
func randomCenters(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	perm := rng.Perm(len(rows))
	centers := make([][]float64, k)
	for c := range k {
		centers[c] = clone(rows[perm[c]])
	}
	return centers
}

func denseRows(x mat.Matrix) [][]float64 {
	r, _ := x.Dims()
	rows := make([][]float64, r)
	for i := range r {
		rows[i] = mat.Row(nil, i, x)
	}
	return rows
}

func toDense(rows [][]float64) *mat.Dense {
	k, d := len(rows), len(rows[0])
	m := mat.NewDense(k, d, nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return m
}

func newCenters(k, d int) [][]float64 {
	out := make([][]float64, k)
	for i := range out {
		out[i] = make([]float64, d)
	}
	return out
}

func equalLabels(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

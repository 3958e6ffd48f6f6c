package gmm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// fullCovariances gives each component its own covariance matrix.
func fullCovariances(rows, resp [][]float64, nk []float64, means [][]float64) []*mat.SymDense {
	d := len(means[0])
	diff := make([]float64, d)
	covs := make([]*mat.SymDense, len(means))
	for c, mu := range means {
		cov := mat.NewSymDense(d, nil)
		for i, r := range rows {
			floats.SubTo(diff, r, mu)
			cov.SymRankOne(cov, resp[i][c], mat.NewVecDense(d, diff))
		}
		cov.ScaleSym(1/nk[c], cov)
		addDiagonal(cov, regCovar)
		covs[c] = cov
	}
	return covs
}

// tiedCovariance shares one covariance matrix across all components.
func tiedCovariance(rows [][]float64, nk []float64, means [][]float64, k int) []*mat.SymDense {
	n, d := len(rows), len(means[0])
	data := make([]float64, 0, n*d)
	for _, r := range rows {
		data = append(data, r...)
	}
	x := mat.NewDense(n, d, data)

	cov := mat.NewSymDense(d, nil)
	cov.SymOuterK(1, x.T())
	for c, mu := range means {
		cov.SymRankOne(cov, -nk[c], mat.NewVecDense(d, mu))
	}
	cov.ScaleSym(1/floats.Sum(nk), cov)
	addDiagonal(cov, regCovar)

	covs := make([]*mat.SymDense, k)
	for c := range covs {
		covs[c] = cov
	}
	return covs
}

// diagCovariances estimates per-feature variances per component. With
// spherical set, each component's variances are averaged into one value.
func diagCovariances(rows, resp [][]float64, nk []float64, means [][]float64, spherical bool) []*mat.SymDense {
	d := len(means[0])
	covs := make([]*mat.SymDense, len(means))
	vars := make([]float64, d)
	for c, mu := range means {
		for j := range vars {
			vars[j] = 0
		}
		for i, r := range rows {
			w := resp[i][c]
			for j, v := range r {
				dv := v - mu[j]
				vars[j] += w * dv * dv
			}
		}
		floats.Scale(1/nk[c], vars)
		floats.AddConst(regCovar, vars)
		if spherical {
			s := floats.Sum(vars) / float64(d)
			for j := range vars {
				vars[j] = s
			}
		}

		cov := mat.NewSymDense(d, nil)
		for j, v := range vars {
			cov.SetSym(j, j, v)
		}
		covs[c] = cov
	}
	return covs
}

func addDiagonal(s *mat.SymDense, v float64) {
	n := s.SymmetricDim()
	for i := range n {
		s.SetSym(i, i, s.At(i, i)+v)
	}
}

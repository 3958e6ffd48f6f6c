// Package preprocess holds feature scaling applied before clustering.
package preprocess

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// zeroScale is the relative standard deviation below which a column is
// treated as constant.
const zeroScale = 10 * 2.220446049250313e-16

// Standardize returns a new matrix where every column has zero mean and unit
// population variance. Constant columns are only centred. x is not modified.
func Standardize(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(r, c, nil)

	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, x)
		mean, variance := stat.PopMeanVariance(col, nil)
		scale := math.Sqrt(variance)
		if scale <= zeroScale*math.Max(1, math.Abs(mean)) {
			scale = 1
		}
		for i, v := range col {
			out.Set(i, j, (v-mean)/scale)
		}
	}
	return out
}

package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Regressor is a ridge-regularized linear model. The regression algorithm
// is deliberately pluggable behind the adapter; ridge keeps the artifact
// small, deterministic, and portable across rebuilds.
type Regressor struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// fitRidge solves (XᵀX + λI)β = Xᵀy with an unpenalized intercept column.
func fitRidge(rows [][]float64, labels []float64, lambda float64) (*Regressor, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("no rows to fit")
	}
	d := len(rows[0])
	if d == 0 {
		return nil, errors.New("rows have no features")
	}
	if len(labels) != n {
		return nil, fmt.Errorf("row/label count mismatch: %d rows, %d labels", n, len(labels))
	}

	// Design matrix with a leading column of ones for the intercept.
	x := mat.NewDense(n, d+1, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), d)
		}
		x.Set(i, 0, 1)
		for j, v := range row {
			x.Set(i, j+1, v)
		}
		y.SetVec(i, labels[i])
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 1; j <= d; j++ {
		xtx.Set(j, j, xtx.At(j, j)+lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return nil, fmt.Errorf("failed to solve normal equations: %w", err)
	}

	weights := make([]float64, d)
	for j := 0; j < d; j++ {
		weights[j] = beta.AtVec(j + 1)
	}

	return &Regressor{
		Intercept: beta.AtVec(0),
		Weights:   weights,
	}, nil
}

// predict evaluates the model on one positional row. The row must already
// be in schema order; only the adapter builds such rows.
func (r *Regressor) predict(row []float64) float64 {
	out := r.Intercept
	for j, w := range r.Weights {
		out += w * row[j]
	}
	return out
}

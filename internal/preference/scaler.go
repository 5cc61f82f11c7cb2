package preference

import "math"

// Scaler standardizes feature columns to zero mean and unit variance.
// Columns with zero variance are passed through unscaled.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes column means and standard deviations over X.
func FitScaler(X [][]float64) Scaler {
	if len(X) == 0 {
		return Scaler{}
	}
	width := len(X[0])
	mean := make([]float64, width)
	std := make([]float64, width)

	for _, row := range X {
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(X))
	for j := range mean {
		mean[j] /= n
	}
	for _, row := range X {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		if std[j] == 0 {
			std[j] = 1.0
		}
	}
	return Scaler{Mean: mean, Std: std}
}

// Transform standardizes rows in place-safe copies.
func (s Scaler) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for j, v := range row {
			if j < len(s.Mean) {
				scaled[j] = (v - s.Mean[j]) / s.Std[j]
			} else {
				scaled[j] = v
			}
		}
		out[i] = scaled
	}
	return out
}

// TransformRow standardizes a single vector.
func (s Scaler) TransformRow(row []float64) []float64 {
	return s.Transform([][]float64{row})[0]
}

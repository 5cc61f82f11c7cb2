package preference

import (
	"math"
	"math/rand"
)

// Logistic is a binary logistic-regression classifier fit by gradient
// descent with L2 regularization and balanced class weights.
type Logistic struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

const (
	logisticMaxIter      = 1000
	logisticLearningRate = 0.1
	logisticL2           = 1.0 // inverse of the regularization strength C=1.0
)

// FitLogistic trains on standardized features X with binary labels y.
// Class weights are balanced so a skewed feedback distribution does not
// collapse the minority class.
func FitLogistic(X [][]float64, y []int) Logistic {
	n := len(X)
	if n == 0 {
		return Logistic{}
	}
	width := len(X[0])
	w := make([]float64, width)
	b := 0.0

	var posCount, negCount float64
	for _, label := range y {
		if label == 1 {
			posCount++
		} else {
			negCount++
		}
	}
	posWeight, negWeight := 1.0, 1.0
	if posCount > 0 && negCount > 0 {
		posWeight = float64(n) / (2.0 * posCount)
		negWeight = float64(n) / (2.0 * negCount)
	}

	for iter := 0; iter < logisticMaxIter; iter++ {
		gradW := make([]float64, width)
		gradB := 0.0
		for i, row := range X {
			pred := sigmoid(dot(w, row) + b)
			diff := pred - float64(y[i])
			sampleWeight := negWeight
			if y[i] == 1 {
				sampleWeight = posWeight
			}
			diff *= sampleWeight
			for j, v := range row {
				gradW[j] += diff * v
			}
			gradB += diff
		}
		for j := range gradW {
			gradW[j] = gradW[j]/float64(n) + logisticL2*w[j]/float64(n)
			w[j] -= logisticLearningRate * gradW[j]
		}
		b -= logisticLearningRate * gradB / float64(n)
	}

	return Logistic{Coefficients: w, Intercept: b}
}

// Probability returns P(label=1) for a standardized feature vector.
func (m Logistic) Probability(row []float64) float64 {
	return sigmoid(dot(m.Coefficients, row) + m.Intercept)
}

// Predict thresholds the probability at 0.5.
func (m Logistic) Predict(row []float64) int {
	if m.Probability(row) >= 0.5 {
		return 1
	}
	return 0
}

// Metrics summarizes held-out evaluation plus cross-validation.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	CVMean    float64 `json:"cv_mean"`
	CVStd     float64 `json:"cv_std"`
}

// evaluate computes weighted-average precision/recall/F1 over both classes,
// matching the usual weighted scoring of a binary classification report.
func evaluate(m Logistic, X [][]float64, y []int) Metrics {
	if len(X) == 0 {
		return Metrics{}
	}
	var tp, tn, fp, fn float64
	for i, row := range X {
		pred := m.Predict(row)
		switch {
		case pred == 1 && y[i] == 1:
			tp++
		case pred == 0 && y[i] == 0:
			tn++
		case pred == 1 && y[i] == 0:
			fp++
		default:
			fn++
		}
	}
	total := tp + tn + fp + fn

	posPrecision := safeDiv(tp, tp+fp)
	posRecall := safeDiv(tp, tp+fn)
	negPrecision := safeDiv(tn, tn+fn)
	negRecall := safeDiv(tn, tn+fp)

	posSupport := tp + fn
	negSupport := tn + fp

	precision := (posPrecision*posSupport + negPrecision*negSupport) / total
	recall := (posRecall*posSupport + negRecall*negSupport) / total

	posF1 := f1(posPrecision, posRecall)
	negF1 := f1(negPrecision, negRecall)
	weightedF1 := (posF1*posSupport + negF1*negSupport) / total

	return Metrics{
		Accuracy:  (tp + tn) / total,
		Precision: precision,
		Recall:    recall,
		F1:        weightedF1,
	}
}

// crossValidate runs k-fold accuracy on the training split.
func crossValidate(X [][]float64, y []int, k int, rng *rand.Rand) (mean, std float64) {
	n := len(X)
	if n < k || k < 2 {
		return 0, 0
	}
	idx := rng.Perm(n)
	scores := make([]float64, 0, k)
	foldSize := n / k

	for fold := 0; fold < k; fold++ {
		lo := fold * foldSize
		hi := lo + foldSize
		if fold == k-1 {
			hi = n
		}

		var trainX, testX [][]float64
		var trainY, testY []int
		for pos, i := range idx {
			if pos >= lo && pos < hi {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		if !hasBothClasses(trainY) || len(testY) == 0 {
			continue
		}
		m := FitLogistic(trainX, trainY)
		correct := 0.0
		for i, row := range testX {
			if m.Predict(row) == testY[i] {
				correct++
			}
		}
		scores = append(scores, correct/float64(len(testY)))
	}
	if len(scores) == 0 {
		return 0, 0
	}
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	for _, s := range scores {
		std += (s - mean) * (s - mean)
	}
	std = math.Sqrt(std / float64(len(scores)))
	return mean, std
}

func hasBothClasses(y []int) bool {
	var pos, neg bool
	for _, label := range y {
		if label == 1 {
			pos = true
		} else {
			neg = true
		}
	}
	return pos && neg
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		if i < len(b) {
			sum += a[i] * b[i]
		}
	}
	return sum
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func f1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

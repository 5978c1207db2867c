package services

// CronbachAlpha computes Cronbach's alpha for a matrix of adjusted item
// values shaped [nParticipants][nItems]. It reports the internal
// consistency of an instrument's items across stored submissions.
// Population variance (divide by N) is used throughout, which yields
// alpha=1.0 for perfectly correlated items. Degenerate inputs (no rows,
// fewer than two items, ragged rows, zero total variance) return 0, and
// the result is clamped to [0,1].
func CronbachAlpha(matrix [][]float64) float64 {
	n := len(matrix)
	if n == 0 {
		return 0
	}
	k := len(matrix[0])
	if k < 2 {
		return 0
	}

	means := make([]float64, k)
	totals := make([]float64, n)
	for i, row := range matrix {
		if len(row) != k {
			return 0
		}
		for j, v := range row {
			means[j] += v
			totals[i] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	var sumItemVars float64
	for j := 0; j < k; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			d := matrix[i][j] - means[j]
			sum += d * d
		}
		sumItemVars += sum / float64(n)
	}

	var totalMean float64
	for _, t := range totals {
		totalMean += t
	}
	totalMean /= float64(n)
	var totalVar float64
	for _, t := range totals {
		d := t - totalMean
		totalVar += d * d
	}
	totalVar /= float64(n)
	if totalVar == 0 {
		return 0
	}

	kf := float64(k)
	alpha := (kf / (kf - 1.0)) * (1.0 - (sumItemVars / totalVar))
	if alpha < 0 {
		return 0
	}
	if alpha > 1 {
		return 1
	}
	return alpha
}

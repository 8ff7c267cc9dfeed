package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/LumenBytes/vidlens-cli/internal/dataset"
)

// ErrInsufficientData indicates a correlation was requested over fewer than
// two records, or over a field with zero variance.
var ErrInsufficientData = errors.New("analysis: insufficient data for correlation")

// Correlate computes the Pearson correlation coefficient between two numeric
// fields over all records. The result is clamped to [-1, 1]. It is a pure
// function of its inputs and keeps no state between calls.
func Correlate(records []dataset.VideoRecord, x, y Field) (float64, error) {
	if _, err := ParseField(string(x)); err != nil {
		return 0, err
	}
	if _, err := ParseField(string(y)); err != nil {
		return 0, err
	}
	n := float64(len(records))
	if len(records) < 2 {
		return 0, fmt.Errorf("%w: have %d records, need at least 2", ErrInsufficientData, len(records))
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	for _, r := range records {
		xv, yv := x.Value(r), y.Value(r)
		sumX += xv
		sumY += yv
		sumXX += xv * xv
		sumYY += yv * yv
		sumXY += xv * yv
	}

	varX := n*sumXX - sumX*sumX
	varY := n*sumYY - sumY*sumY
	if varX <= 0 || varY <= 0 {
		return 0, fmt.Errorf("%w: zero variance in %s or %s", ErrInsufficientData, x, y)
	}

	r := (n*sumXY - sumX*sumY) / math.Sqrt(varX*varY)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, fmt.Errorf("%w: undefined coefficient", ErrInsufficientData)
	}
	return r, nil
}

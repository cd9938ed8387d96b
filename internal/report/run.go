package report

import (
	"math"
	"strconv"
	"time"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"github.com/google/uuid"
)

// Run is one accessibility computation with the provenance needed to
// render or persist it.
type Run struct {
	ID           string
	Dataset      string
	Coefficients string
	GroupCol     string
	CreatedAt    time.Time
	Result       *accessibility.Result
}

// NewRun stamps a result with a fresh id and the current time.
func NewRun(dataset, coefficients, groupCol string, res *accessibility.Result) *Run {
	return &Run{
		ID:           uuid.NewString(),
		Dataset:      dataset,
		Coefficients: coefficients,
		GroupCol:     groupCol,
		CreatedAt:    time.Now().UTC(),
		Result:       res,
	}
}

// Float renders NaN and infinities as NaN, inf and -inf.
func Float(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// jsonFloat encodes NaN as null and infinities as strings, which
// encoding/json refuses to emit as numbers.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return []byte("null"), nil
	case math.IsInf(x, 0):
		return []byte(strconv.Quote(Float(x))), nil
	}
	return []byte(strconv.FormatFloat(x, 'g', -1, 64)), nil
}

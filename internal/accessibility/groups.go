package accessibility

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// GroupStats summarizes accessibility within one group.
type GroupStats struct {
	// Group is the raw label; Label is what gets displayed.
	Group  string  `json:"group"`
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// Std is the sample standard deviation; NaN for a single member.
	Std float64 `json:"std"`
}

var booleanLabels = map[float64]string{0: "no", 1: "yes"}

// BooleanLabels maps group labels to "no"/"yes" when the label domain is
// exactly {0, 1}. ok is false for any other domain, and when two labels
// spell the same value (e.g. "0" and "0.0") so no two groups share a name.
func BooleanLabels(groups []string) (labels map[string]string, ok bool) {
	if len(groups) == 0 {
		return nil, false
	}
	labels = make(map[string]string, len(groups))
	present := map[float64]bool{}
	for _, g := range groups {
		f, err := strconv.ParseFloat(strings.TrimSpace(g), 64)
		if err != nil {
			return nil, false
		}
		name, known := booleanLabels[f]
		if !known || present[f] {
			return nil, false
		}
		present[f] = true
		labels[g] = name
	}
	if len(present) != len(booleanLabels) {
		return nil, false
	}
	return labels, true
}

// Summarize partitions persons by group and computes mean, median and
// sample standard deviation of accessibility per group. Persons without a
// group label are left out, and NaN accessibilities are skipped by all
// three statistics. Count is the number of values the statistics used.
// Groups come back in natural label order.
func Summarize(persons []PersonAccessibility, relabel bool) []GroupStats {
	buckets := map[string][]float64{}
	var keys []string
	for _, p := range persons {
		if p.Group == "" {
			continue
		}
		if _, ok := buckets[p.Group]; !ok {
			keys = append(keys, p.Group)
			buckets[p.Group] = nil
		}
		if !math.IsNaN(p.Accessibility) {
			buckets[p.Group] = append(buckets[p.Group], p.Accessibility)
		}
	}
	sortNatural(keys)

	var labels map[string]string
	if relabel {
		labels, _ = BooleanLabels(keys)
	}

	out := make([]GroupStats, 0, len(keys))
	for _, k := range keys {
		vals := buckets[k]
		gs := GroupStats{Group: k, Label: k, Count: len(vals)}
		if l, ok := labels[k]; ok {
			gs.Label = l
		}
		gs.Mean, gs.Median, gs.Std = math.NaN(), math.NaN(), math.NaN()
		if len(vals) > 0 {
			gs.Mean = stat.Mean(vals, nil)
			gs.Median = median(vals)
		}
		if len(vals) > 1 {
			gs.Std = stat.StdDev(vals, nil)
		}
		out = append(out, gs)
	}
	return out
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return quantile(cp, 0.5)
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi || sorted[lo] == sorted[hi] {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

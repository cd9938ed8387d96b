package accessibility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// TaggedUtility is a utility together with the person and mode it belongs to.
type TaggedUtility struct {
	PersonID string
	Mode     Mode
	Value    float64
}

// Grid is the person × mode utility matrix. Cells for alternatives a
// person was not observed in hold -Inf.
type Grid struct {
	Persons []string
	Cells   [][NumModes]float64
	// Observed counts how many cells of each row came from a record.
	Observed []int
	index    map[string]int
}

// BuildGrid reshapes tagged utilities into a Grid. Persons are ordered
// naturally by id. A NaN utility leaves its cell at -Inf, so the mode drops
// out of the person's choice set. A repeated (person, mode) pair keeps the
// last utility and is reported in the returned warnings.
func BuildGrid(us []TaggedUtility) (*Grid, []string) {
	seen := map[string]int{}
	var ids []string
	for _, u := range us {
		if _, ok := seen[u.PersonID]; !ok {
			seen[u.PersonID] = len(ids)
			ids = append(ids, u.PersonID)
		}
	}
	sortNatural(ids)

	g := &Grid{
		Persons:  ids,
		Cells:    make([][NumModes]float64, len(ids)),
		Observed: make([]int, len(ids)),
		index:    make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		g.index[id] = i
		for m := range g.Cells[i] {
			g.Cells[i][m] = math.Inf(-1)
		}
	}

	var warnings []string
	filled := make([][NumModes]bool, len(ids))
	for _, u := range us {
		if !u.Mode.Valid() {
			warnings = append(warnings, fmt.Sprintf("person %s: skipping utility for unknown mode %d", u.PersonID, int(u.Mode)))
			continue
		}
		i := g.index[u.PersonID]
		if math.IsNaN(u.Value) {
			continue
		}
		if filled[i][u.Mode] {
			warnings = append(warnings, fmt.Sprintf("person %s has more than one %s record; using the last", u.PersonID, u.Mode))
		} else {
			filled[i][u.Mode] = true
			g.Observed[i]++
		}
		g.Cells[i][u.Mode] = u.Value
	}
	return g, warnings
}

// Row returns the utilities of one person, in mode order.
func (g *Grid) Row(personID string) ([]float64, bool) {
	i, ok := g.index[personID]
	if !ok {
		return nil, false
	}
	row := g.Cells[i]
	return row[:], true
}

// LogSumExp returns log(Σ exp(x)) computed around the row maximum.
// An empty row, or one holding only -Inf, yields -Inf. Any NaN yields NaN.
func LogSumExp(row []float64) float64 {
	if len(row) == 0 {
		return math.Inf(-1)
	}
	for _, x := range row {
		if math.IsNaN(x) {
			return math.NaN()
		}
	}
	return floats.LogSumExp(row)
}

// PersonAccessibility is one person's logsum and group label.
type PersonAccessibility struct {
	PersonID      string  `json:"person_id"`
	Accessibility float64 `json:"accessibility"`
	Group         string  `json:"group"`
	Observed      int     `json:"observed"`
}

// Degenerate reports whether the person had no alternative with finite utility.
func (p PersonAccessibility) Degenerate() bool { return math.IsInf(p.Accessibility, -1) }

// Aggregate reduces every grid row to its logsum.
func Aggregate(g *Grid) []PersonAccessibility {
	out := make([]PersonAccessibility, len(g.Persons))
	for i, id := range g.Persons {
		row := g.Cells[i]
		out[i] = PersonAccessibility{
			PersonID:      id,
			Accessibility: LogSumExp(row[:]),
			Observed:      g.Observed[i],
		}
	}
	return out
}

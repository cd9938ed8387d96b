package accessibility

import (
	"sort"
	"strconv"
	"strings"
)

// naturalLess orders numeric strings by value and everything else
// lexically, with numbers ahead of text.
func naturalLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA == nil && errB == nil:
		if fa == fb {
			return a < b
		}
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func sortNatural(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
}

// SortPersons orders persons naturally by id.
func SortPersons(ps []PersonAccessibility) {
	sort.SliceStable(ps, func(i, j int) bool { return naturalLess(ps[i].PersonID, ps[j].PersonID) })
}

// SortGroups orders group statistics naturally by raw label.
func SortGroups(gs []GroupStats) {
	sort.SliceStable(gs, func(i, j int) bool { return naturalLess(gs[i].Group, gs[j].Group) })
}

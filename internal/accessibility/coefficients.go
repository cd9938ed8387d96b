package accessibility

import (
	"math"
	"sort"
	"strings"
)

// Term kinds used to build coefficient names of the form {kind}_{mode}.
const (
	KindASC  = "asc"
	KindTime = "time"
	KindCost = "cost"
)

// Coefficients maps coefficient names to estimated weights. Absent names
// carry no effect.
type Coefficients map[string]float64

// Term returns the coefficient name for kind and mode, e.g. "time_transit".
func Term(kind string, m Mode) string {
	return kind + "_" + m.String()
}

// Lookup returns the weight for name and whether it was estimated.
func (c Coefficients) Lookup(name string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	w, ok := c[name]
	return w, ok
}

// Weight returns the weight for name, or 0 when absent.
func (c Coefficients) Weight(name string) float64 {
	w, _ := c.Lookup(name)
	return w
}

// Unused lists coefficient names that no utility term will ever read
// given the attribute list, sorted. An ASC on the reference mode counts as unused.
func (c Coefficients) Unused(vars []string) []string {
	read := make(map[string]struct{}, len(c))
	for _, m := range Modes() {
		if m != Reference {
			read[Term(KindASC, m)] = struct{}{}
		}
		read[Term(KindTime, m)] = struct{}{}
		read[Term(KindCost, m)] = struct{}{}
		for _, v := range vars {
			read[Term(v, m)] = struct{}{}
		}
	}
	var out []string
	for name := range c {
		if _, ok := read[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Value is an optional real number read from a record.
type Value struct {
	Float float64
	Valid bool
}

// Some wraps a present value. NaN is treated as missing.
func Some(x float64) Value {
	if math.IsNaN(x) {
		return Value{}
	}
	return Value{Float: x, Valid: true}
}

// Missing returns an absent value.
func Missing() Value { return Value{} }

// Record is one (person, alternative) row.
type Record struct {
	// Row is the 1-based source row, used in error messages. Zero when unknown.
	Row      int
	PersonID string
	AltCode  int
	Time     Value
	Cost     Value
	Attrs    map[string]Value
	Group    string
}

// Attr returns the named socio-demographic attribute, missing if absent.
func (r Record) Attr(name string) Value {
	if r.Attrs == nil {
		return Value{}
	}
	return r.Attrs[strings.TrimSpace(name)]
}

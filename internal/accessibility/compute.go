package accessibility

import (
	"fmt"
	"strings"
)

// DegeneratePolicy decides what happens to a person whose logsum is -Inf.
type DegeneratePolicy string

const (
	// Propagate keeps the person with accessibility -Inf.
	Propagate DegeneratePolicy = "propagate"
	// Exclude drops the person from both outputs and records a warning.
	Exclude DegeneratePolicy = "exclude"
	// Fail aborts the computation with a DegeneratePersonError.
	Fail DegeneratePolicy = "fail"
)

// ParseDegeneratePolicy accepts propagate, exclude or fail (case-insensitive).
// An empty string means Propagate.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch DegeneratePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Propagate:
		return Propagate, nil
	case Exclude:
		return Exclude, nil
	case Fail:
		return Fail, nil
	default:
		return "", fmt.Errorf("invalid degenerate policy: %s (use propagate, exclude or fail)", s)
	}
}

// Options controls a Compute run.
type Options struct {
	// PersonVars are the socio-demographic attributes interacted with mode.
	PersonVars []string
	// RequireTime rejects records with a missing travel time.
	RequireTime bool
	// Degenerate handles persons without any finite-utility alternative.
	Degenerate DegeneratePolicy
	// RelabelBoolean renders a {0,1} group domain as no/yes.
	RelabelBoolean bool
}

// DefaultOptions returns the options matching the usual survey layout.
func DefaultOptions() Options {
	return Options{
		PersonVars:     []string{"age", "male", "numvec", "hhinc"},
		RequireTime:    true,
		Degenerate:     Propagate,
		RelabelBoolean: true,
	}
}

// Result holds both output tables of a run.
type Result struct {
	Groups  []GroupStats
	Persons []PersonAccessibility
	// Records is the number of input records evaluated.
	Records  int
	Warnings []string
}

// Compute evaluates every record, reduces each person to a logsum and
// summarizes by group. It is all-or-nothing: on error no partial result
// is returned.
func Compute(records []Record, coefs Coefficients, opt Options) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	ev := Evaluator{Coefs: coefs, Vars: opt.PersonVars, RequireTime: opt.RequireTime}

	us := make([]TaggedUtility, 0, len(records))
	groupOf := map[string]string{}
	for _, rec := range records {
		u, err := ev.Utility(rec)
		if err != nil {
			return nil, err
		}
		us = append(us, TaggedUtility{PersonID: rec.PersonID, Mode: Mode(rec.AltCode), Value: u})
		// First label seen wins.
		if _, ok := groupOf[rec.PersonID]; !ok {
			groupOf[rec.PersonID] = strings.TrimSpace(rec.Group)
		}
	}

	grid, warnings := BuildGrid(us)
	res := &Result{Records: len(records), Warnings: warnings}

	persons := Aggregate(grid)
	kept := persons[:0]
	for _, p := range persons {
		p.Group = groupOf[p.PersonID]
		if p.Degenerate() {
			switch opt.Degenerate {
			case Fail:
				return nil, &DegeneratePersonError{PersonID: p.PersonID}
			case Exclude:
				res.Warnings = append(res.Warnings, fmt.Sprintf("person %s excluded: no alternative with finite utility", p.PersonID))
				continue
			}
		}
		kept = append(kept, p)
	}
	res.Persons = kept

	var ungrouped int
	for _, p := range kept {
		if p.Group == "" {
			ungrouped++
		}
	}
	if ungrouped > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d person(s) without a group label left out of group statistics", ungrouped))
	}
	if unused := coefs.Unused(opt.PersonVars); len(unused) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("coefficients never used: %s", strings.Join(unused, ", ")))
	}

	res.Groups = Summarize(kept, opt.RelabelBoolean)
	return res, nil
}

package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
)

// Table is a header plus string rows, all padded to the header width.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Columns names the dataset columns that feed a Record.
type Columns struct {
	Person     string
	Alt        string
	Time       string
	Cost       string
	PersonVars []string
	Group      string
}

// DefaultColumns matches the household travel survey export.
func DefaultColumns() Columns {
	return Columns{
		Person:     "sampno",
		Alt:        "mode_four_kinds",
		Time:       "travel_time",
		Cost:       "travel_cost",
		PersonVars: []string{"age", "male", "numvec", "hhinc"},
		Group:      "work",
	}
}

// MissingColumnError indicates a required column is absent from the header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in %s", e.Column, e.Table)
}

func (t *Table) index() map[string]int {
	idx := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		key := strings.ToLower(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// Records maps rows onto accessibility records. Person, alternative and
// time columns are required; cost, person variables and group may be
// absent from the header, in which case every row treats them as missing
// and a warning is returned. Numeric person ids and group labels are
// normalized, so "1" and "1.0" are the same person. Record.Row is the
// spreadsheet row number (the header is row 1).
func (t *Table) Records(cols Columns, opt Options) ([]accessibility.Record, []string, error) {
	idx := t.index()
	lookup := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := idx[strings.ToLower(strings.TrimSpace(name))]; ok {
			return i
		}
		return -1
	}
	required := func(name string) (int, error) {
		i := lookup(name)
		if i < 0 {
			return 0, &MissingColumnError{Table: t.Name, Column: name}
		}
		return i, nil
	}

	personIdx, err := required(cols.Person)
	if err != nil {
		return nil, nil, err
	}
	altIdx, err := required(cols.Alt)
	if err != nil {
		return nil, nil, err
	}
	timeIdx, err := required(cols.Time)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	optional := func(name, role string) int {
		i := lookup(name)
		if i < 0 && name != "" {
			warnings = append(warnings, fmt.Sprintf("%s column %q not found in %s; treating as missing", role, name, t.Name))
		}
		return i
	}
	costIdx := optional(cols.Cost, "cost")
	groupIdx := optional(cols.Group, "group")
	varIdx := make([]int, len(cols.PersonVars))
	for i, v := range cols.PersonVars {
		varIdx[i] = optional(v, "person variable")
	}

	out := make([]accessibility.Record, 0, len(t.Rows))
	for n, row := range t.Rows {
		rowNum := n + 2
		person := canonicalKey(row[personIdx])
		if person == "" {
			return nil, nil, fmt.Errorf("row %d: empty %s", rowNum, cols.Person)
		}
		alt, err := parseCode(row[altIdx], opt)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %s: %w", rowNum, cols.Alt, err)
		}
		rec := accessibility.Record{
			Row:      rowNum,
			PersonID: person,
			AltCode:  alt,
			Time:     cell(row, timeIdx, opt),
			Cost:     cell(row, costIdx, opt),
		}
		if len(cols.PersonVars) > 0 {
			rec.Attrs = make(map[string]accessibility.Value, len(cols.PersonVars))
			for i, v := range cols.PersonVars {
				rec.Attrs[v] = cell(row, varIdx[i], opt)
			}
		}
		if groupIdx >= 0 {
			rec.Group = canonicalKey(row[groupIdx])
			if isMissing(rec.Group) {
				rec.Group = ""
			}
		}
		out = append(out, rec)
	}
	return out, warnings, nil
}

func cell(row []string, i int, opt Options) accessibility.Value {
	if i < 0 || i >= len(row) {
		return accessibility.Missing()
	}
	x, ok := parseNumeric(row[i], opt.DecimalSeparator)
	if !ok {
		return accessibility.Missing()
	}
	return accessibility.Some(x)
}

func parseCode(s string, opt Options) (int, error) {
	x, ok := parseNumeric(s, opt.DecimalSeparator)
	if !ok {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integer code: %q", s)
	}
	return int(x), nil
}

package report

import (
	"fmt"
	"math"
	"strings"
)

// Markdown renders a compact report of group statistics, a head of the
// per-person table and any warnings. personRows <= 0 omits the person table.
func (r *Run) Markdown(personRows int) string {
	var b strings.Builder
	res := r.Result
	b.WriteString("[ACCESSIBILITY SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Run: %s\n", r.ID))
	if r.Dataset != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s\n", r.Dataset))
	}
	if r.Coefficients != "" {
		b.WriteString(fmt.Sprintf("Coefficients: %s\n", r.Coefficients))
	}
	b.WriteString(fmt.Sprintf("Records: %d\n", res.Records))
	b.WriteString(fmt.Sprintf("Persons: %d\n", len(res.Persons)))

	groupCol := r.GroupCol
	if groupCol == "" {
		groupCol = "group"
	}
	b.WriteString("\n[GROUP STATISTICS]\n")
	if len(res.Groups) == 0 {
		b.WriteString("(no grouped persons)\n")
	} else {
		b.WriteString(fmt.Sprintf("| %s | n | mean | median | std |\n", safeVal(groupCol)))
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, g := range res.Groups {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s |\n",
				safeVal(g.Label), g.Count, short(g.Mean), short(g.Median), short(g.Std)))
		}
	}

	if personRows > 0 && len(res.Persons) > 0 {
		b.WriteString("\n[PERSONS]\n")
		b.WriteString(fmt.Sprintf("| person | accessibility | %s |\n", safeVal(groupCol)))
		b.WriteString("| --- | --- | --- |\n")
		for i, p := range res.Persons {
			if i >= personRows {
				break
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", safeVal(p.PersonID), short(p.Accessibility), safeVal(p.Group)))
		}
		if len(res.Persons) > personRows {
			b.WriteString(fmt.Sprintf("(%d more)\n", len(res.Persons)-personRows))
		}
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range res.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func short(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Float(x)
	}
	return fmt.Sprintf("%.4f", x)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

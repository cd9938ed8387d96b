package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"github.com/KaramelBytes/logsum-cli/internal/utils"
)

// WritePersonsCSV writes the per-person table: person id, accessibility, group.
func WritePersonsCSV(w io.Writer, persons []accessibility.PersonAccessibility, groupCol string) error {
	if groupCol == "" {
		groupCol = "group"
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"person_id", "accessibility", groupCol}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range persons {
		if err := cw.Write([]string{p.PersonID, Float(p.Accessibility), p.Group}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGroupsCSV writes the group statistics table indexed by display label.
func WriteGroupsCSV(w io.Writer, groups []accessibility.GroupStats, groupCol string) error {
	if groupCol == "" {
		groupCol = "group"
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{groupCol, "count", "mean", "median", "std"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, g := range groups {
		row := []string{g.Label, strconv.Itoa(g.Count), Float(g.Mean), Float(g.Median), Float(g.Std)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonGroup struct {
	Group  string    `json:"group"`
	Label  string    `json:"label"`
	Count  int       `json:"count"`
	Mean   jsonFloat `json:"mean"`
	Median jsonFloat `json:"median"`
	Std    jsonFloat `json:"std"`
}

type jsonPerson struct {
	PersonID      string    `json:"person_id"`
	Accessibility jsonFloat `json:"accessibility"`
	Group         string    `json:"group"`
	Observed      int       `json:"observed"`
}

type jsonRun struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	Dataset      string       `json:"dataset,omitempty"`
	Coefficients string       `json:"coefficients,omitempty"`
	GroupCol     string       `json:"group_col,omitempty"`
	Records      int          `json:"records"`
	Groups       []jsonGroup  `json:"groups"`
	Persons      []jsonPerson `json:"persons"`
	Warnings     []string     `json:"warnings,omitempty"`
}

// JSON renders the run with both tables.
func (r *Run) JSON() ([]byte, error) {
	res := r.Result
	out := jsonRun{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Dataset:      r.Dataset,
		Coefficients: r.Coefficients,
		GroupCol:     r.GroupCol,
		Records:      res.Records,
		Groups:       make([]jsonGroup, 0, len(res.Groups)),
		Persons:      make([]jsonPerson, 0, len(res.Persons)),
		Warnings:     res.Warnings,
	}
	for _, g := range res.Groups {
		out.Groups = append(out.Groups, jsonGroup{
			Group: g.Group, Label: g.Label, Count: g.Count,
			Mean: jsonFloat(g.Mean), Median: jsonFloat(g.Median), Std: jsonFloat(g.Std),
		})
	}
	for _, p := range res.Persons {
		out.Persons = append(out.Persons, jsonPerson{
			PersonID: p.PersonID, Accessibility: jsonFloat(p.Accessibility), Group: p.Group, Observed: p.Observed,
		})
	}
	return utils.PrettyJSON(out)
}

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var surveyRows = []string{
	"sampno,mode_four_kinds,travel_time,travel_cost,age,male,numvec,hhinc,work",
	"1,0,20,3.5,34,1,2,5,1",
	"1,1,30,,34,1,2,5,1",
	"2,0,15,2,NA,0,1,,0",
	"2,3,25,,51,0,1,,0",
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSVRecords(t *testing.T) {
	p := writeFile(t, "survey.csv", strings.Join(surveyRows, "\n"))
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Name != "survey.csv" || len(tbl.Rows) != 4 {
		t.Fatalf("table = %s with %d rows", tbl.Name, len(tbl.Rows))
	}
	recs, warnings, err := tbl.Records(DefaultColumns(), Options{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(recs) != 4 {
		t.Fatalf("records = %d, want 4", len(recs))
	}
	r := recs[1]
	if r.Row != 3 || r.PersonID != "1" || r.AltCode != 1 || r.Group != "1" {
		t.Fatalf("record 1 = %+v", r)
	}
	if !r.Time.Valid || r.Time.Float != 30 {
		t.Fatalf("time = %+v", r.Time)
	}
	if r.Cost.Valid {
		t.Fatalf("cost should be missing: %+v", r.Cost)
	}
	if age := recs[2].Attr("age"); age.Valid {
		t.Fatalf("NA age should be missing: %+v", age)
	}
	if hh := recs[0].Attr("hhinc"); !hh.Valid || hh.Float != 5 {
		t.Fatalf("hhinc = %+v", hh)
	}
}

func TestRecordsMissingRequiredColumn(t *testing.T) {
	p := writeFile(t, "survey.csv", "sampno,mode_four_kinds\n1,0\n")
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, _, err = tbl.Records(DefaultColumns(), Options{})
	var mce *MissingColumnError
	if !errors.As(err, &mce) || mce.Column != "travel_time" {
		t.Fatalf("err = %v, want missing travel_time", err)
	}
}

func TestRecordsOptionalColumnsWarn(t *testing.T) {
	p := writeFile(t, "trips.tsv", "id\talt\ttime\n7\t2\t12,5\n")
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cols := Columns{Person: "ID", Alt: "alt", Time: "time", Cost: "fare", PersonVars: []string{"age"}, Group: "work"}
	recs, warnings, err := tbl.Records(cols, Options{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(warnings) != 3 {
		t.Fatalf("warnings = %v, want 3", warnings)
	}
	if recs[0].Time.Float != 12.5 || recs[0].AltCode != 2 || recs[0].Group != "" {
		t.Fatalf("record = %+v", recs[0])
	}
}

func TestRecordsRejectsFractionalCode(t *testing.T) {
	p := writeFile(t, "bad.csv", "sampno,mode_four_kinds,travel_time\n1,1.5,10\n")
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, _, err = tbl.Records(DefaultColumns(), Options{})
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("err = %v, want row 2 code error", err)
	}
}

func TestRecordsKeepsUnknownCodesForEvaluator(t *testing.T) {
	p := writeFile(t, "odd.csv", "sampno,mode_four_kinds,travel_time\n1,9.0,10\n")
	tbl, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	recs, _, err := tbl.Records(DefaultColumns(), Options{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if recs[0].AltCode != 9 {
		t.Fatalf("alt = %d, want 9", recs[0].AltCode)
	}
}

func TestLoadUnsupported(t *testing.T) {
	p := writeFile(t, "survey.parquet", "x")
	if _, err := Load(p, Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		dec  rune
		want float64
		ok   bool
	}{
		{"12.5", 0, 12.5, true},
		{"12,5", 0, 12.5, true},
		{"1.234,5", 0, 1234.5, true},
		{"1,234.5", 0, 1234.5, true},
		{"1,5", '.', 15, true},
		{"-0.03", 0, -0.03, true},
		{"NaN", 0, 0, false},
		{" na ", 0, 0, false},
		{"abc", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := parseNumeric(c.in, c.dec)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("parseNumeric(%q, %q) = %v, %v; want %v, %v", c.in, c.dec, got, ok, c.want, c.ok)
		}
	}
}

func TestRecordsNormalizesNumericKeys(t *testing.T) {
	body := strings.Join([]string{
		"sampno,mode_four_kinds,travel_time,work",
		"1,0,20,0",
		"1.0,1,30,0.0",
		"007,0,15,1",
		"home-12,0,10,-0",
		"12345678901234567890,0,5,1",
	}, "\n")
	tbl, err := Load(writeFile(t, "keys.csv", body), Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	recs, _, err := tbl.Records(DefaultColumns(), Options{})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	want := []struct{ person, group string }{
		{"1", "0"},
		{"1", "0"},
		{"7", "1"},
		{"home-12", "0"},
		{"12345678901234567890", "1"},
	}
	for i, w := range want {
		if recs[i].PersonID != w.person || recs[i].Group != w.group {
			t.Errorf("record %d = (%q, %q), want (%q, %q)", i, recs[i].PersonID, recs[i].Group, w.person, w.group)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	cases := map[string]string{
		" 42 ":  "42",
		"42.50": "42.5",
		"-0.0":  "0",
		"abc":   "abc",
		"NaN":   "NaN",
		"1e3":   "1000",
	}
	for in, want := range cases {
		if got := canonicalKey(in); got != want {
			t.Errorf("canonicalKey(%q) = %q, want %q", in, got, want)
		}
	}
}

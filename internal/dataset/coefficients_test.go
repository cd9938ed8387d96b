package dataset

import (
	"math"
	"testing"
)

func TestLoadCoefficientsYAML(t *testing.T) {
	p := writeFile(t, "coefs.yaml", "asc_transit: -1.0\ntime_auto: -0.05\ntime_transit: -0.03\nage_bike: 2\n")
	c, err := LoadCoefficients(p)
	if err != nil {
		t.Fatalf("LoadCoefficients: %v", err)
	}
	if len(c) != 4 || c["time_auto"] != -0.05 || c["age_bike"] != 2 {
		t.Fatalf("coefs = %v", c)
	}
}

func TestLoadCoefficientsJSONParams(t *testing.T) {
	p := writeFile(t, "res.json", `{"params": {"asc_walk": 0.4, "cost_auto": -0.1}, "llf": -812.3}`)
	c, err := LoadCoefficients(p)
	if err != nil {
		t.Fatalf("LoadCoefficients: %v", err)
	}
	if len(c) != 2 || c["asc_walk"] != 0.4 {
		t.Fatalf("coefs = %v", c)
	}
}

func TestLoadCoefficientsCSV(t *testing.T) {
	p := writeFile(t, "params.csv", "name,value\nasc_bike,-2.1\ntime_bike,-0.08\n")
	c, err := LoadCoefficients(p)
	if err != nil {
		t.Fatalf("LoadCoefficients: %v", err)
	}
	if len(c) != 2 || c["asc_bike"] != -2.1 || c["time_bike"] != -0.08 {
		t.Fatalf("coefs = %v", c)
	}
}

func TestLoadCoefficientsInfinity(t *testing.T) {
	p := writeFile(t, "coefs.yaml", "asc_bike: -.inf\n")
	c, err := LoadCoefficients(p)
	if err != nil {
		t.Fatalf("LoadCoefficients: %v", err)
	}
	if !math.IsInf(c["asc_bike"], -1) {
		t.Fatalf("asc_bike = %v", c["asc_bike"])
	}
}

func TestLoadCoefficientsRejectsText(t *testing.T) {
	p := writeFile(t, "coefs.yaml", "asc_bike: high\n")
	if _, err := LoadCoefficients(p); err == nil {
		t.Fatalf("expected error for non-numeric coefficient")
	}
	p = writeFile(t, "params.csv", "asc_bike,-1\ntime_bike,fast\n")
	if _, err := LoadCoefficients(p); err == nil {
		t.Fatalf("expected error for non-numeric csv coefficient")
	}
}

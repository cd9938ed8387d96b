package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"gopkg.in/yaml.v3"
)

// LoadCoefficients reads estimated coefficients from a file. YAML and JSON
// files hold a flat name→value mapping (optionally under a "params" key);
// CSV/TSV files hold name,value rows with an optional header.
func LoadCoefficients(path string) (accessibility.Coefficients, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coefficients: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCoefficientsCSV(b, ',')
	case ".tsv":
		return parseCoefficientsCSV(b, '\t')
	default:
		return parseCoefficientsYAML(b)
	}
}

func parseCoefficientsYAML(b []byte) (accessibility.Coefficients, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse coefficients: %w", err)
	}
	if nested, ok := raw["params"].(map[string]any); ok {
		raw = nested
	}
	coefs := make(accessibility.Coefficients, len(raw))
	for k, v := range raw {
		switch x := v.(type) {
		case float64:
			coefs[strings.TrimSpace(k)] = x
		case int:
			coefs[strings.TrimSpace(k)] = float64(x)
		default:
			return nil, fmt.Errorf("coefficient %q: not a number: %v", k, v)
		}
	}
	return coefs, nil
}

func parseCoefficientsCSV(b []byte, delim rune) (accessibility.Coefficients, error) {
	r := csv.NewReader(strings.NewReader(string(b)))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	coefs := accessibility.Coefficients{}
	line := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read coefficients: %w", err)
		}
		line++
		if len(rec) < 2 {
			return nil, fmt.Errorf("coefficients line %d: want name,value", line)
		}
		name := strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff"))
		x, ok := parseNumeric(rec[1], '.')
		if !ok {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("coefficients line %d: %q is not a number", line, rec[1])
		}
		coefs[name] = x
	}
	return coefs, nil
}

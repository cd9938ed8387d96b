package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"github.com/KaramelBytes/logsum-cli/internal/dataset"
	"github.com/KaramelBytes/logsum-cli/internal/report"
	"github.com/KaramelBytes/logsum-cli/internal/store"
	"github.com/KaramelBytes/logsum-cli/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cmpCoefs       string
	cmpPersonCol   string
	cmpAltCol      string
	cmpTimeCol     string
	cmpCostCol     string
	cmpPersonVars  []string
	cmpGroupCol    string
	cmpDelimiter   string
	cmpDecimal     string
	cmpSheetName   string
	cmpSheetIndex  int
	cmpAllowNoTime bool
	cmpDegenerate  string
	cmpNoRelabel   bool
	cmpFormat      string
	cmpOutputPath  string
	cmpPersonsOut  string
	cmpSQLitePath  string
	cmpPersonRows  int
)

var computeCmd = &cobra.Command{
	Use:   "compute <records>",
	Short: "Compute logsum accessibility per person and summarize by group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		f := cmd.Flags()
		pick := func(name, flagVal, cfgVal string) string {
			if f.Changed(name) {
				return flagVal
			}
			return cfgVal
		}

		cols := dataset.Columns{
			Person:     pick("person-col", cmpPersonCol, c.PersonCol),
			Alt:        pick("alt-col", cmpAltCol, c.AltCol),
			Time:       pick("time-col", cmpTimeCol, c.TimeCol),
			Cost:       pick("cost-col", cmpCostCol, c.CostCol),
			PersonVars: c.PersonVars,
			Group:      pick("group-col", cmpGroupCol, c.GroupCol),
		}
		if f.Changed("person-vars") {
			cols.PersonVars = cleanList(cmpPersonVars)
		}

		dopt := dataset.Options{SheetName: cmpSheetName, SheetIndex: cmpSheetIndex}
		if dopt.Delimiter, err = parseDelimiter(pick("delimiter", cmpDelimiter, c.Delimiter)); err != nil {
			return err
		}
		if dopt.DecimalSeparator, err = parseDecimal(pick("decimal", cmpDecimal, c.Decimal)); err != nil {
			return err
		}

		opt := accessibility.DefaultOptions()
		opt.PersonVars = cols.PersonVars
		opt.RequireTime = c.RequireTime
		if f.Changed("allow-missing-time") {
			opt.RequireTime = !cmpAllowNoTime
		}
		opt.RelabelBoolean = c.RelabelBoolean
		if f.Changed("no-relabel") {
			opt.RelabelBoolean = !cmpNoRelabel
		}
		if opt.Degenerate, err = accessibility.ParseDegeneratePolicy(pick("degenerate", cmpDegenerate, c.Degenerate)); err != nil {
			return err
		}
		format := strings.ToLower(pick("format", cmpFormat, c.OutputFormat))
		switch format {
		case "", "md":
			format = "markdown"
		case "markdown", "json", "csv":
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|json|csv)", format)
		}

		path := args[0]
		tbl, err := dataset.Load(path, dopt)
		if err != nil {
			return err
		}
		log.Debug("loaded dataset", zap.String("file", tbl.Name), zap.Int("rows", len(tbl.Rows)), zap.Strings("columns", tbl.Header))
		records, warnings, err := tbl.Records(cols, dopt)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			log.Warn(w)
		}

		coefs, err := dataset.LoadCoefficients(cmpCoefs)
		if err != nil {
			return err
		}
		log.Debug("loaded coefficients", zap.String("file", cmpCoefs), zap.Int("count", len(coefs)))

		res, err := accessibility.Compute(records, coefs, opt)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			log.Warn(w)
		}
		run := report.NewRun(filepath.Base(path), filepath.Base(cmpCoefs), cols.Group, res)
		log.Info("computed accessibility",
			zap.String("run", run.ID),
			zap.Int("records", res.Records),
			zap.Int("persons", len(res.Persons)),
			zap.Int("groups", len(res.Groups)))

		out, err := render(run, format, cmpPersonRows)
		if err != nil {
			return err
		}
		if cmpOutputPath != "" {
			if err := utils.SafeWriteFile(cmpOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", format, cmpOutputPath)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
		}

		if cmpPersonsOut != "" {
			var buf bytes.Buffer
			if err := report.WritePersonsCSV(&buf, res.Persons, cols.Group); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(cmpPersonsOut, buf.Bytes()); err != nil {
				return fmt.Errorf("write persons table: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d persons to %s\n", len(res.Persons), cmpPersonsOut)
		}

		if dbPath := pick("sqlite", cmpSQLitePath, c.SQLitePath); dbPath != "" {
			if err := saveRun(cmd.Context(), dbPath, run); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved run %s to %s\n", run.ID, dbPath)
		}
		return nil
	},
}

func render(run *report.Run, format string, personRows int) ([]byte, error) {
	switch format {
	case "json":
		return run.JSON()
	case "csv":
		var buf bytes.Buffer
		if err := report.WriteGroupsCSV(&buf, run.Result.Groups, run.GroupCol); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return []byte(run.Markdown(personRows)), nil
	}
}

func saveRun(ctx context.Context, dbPath string, run *report.Run) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveRun(ctx, run)
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "", "auto":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func parseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	default:
		return 0, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", s)
	}
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(computeCmd)
	computeCmd.Flags().StringVarP(&cmpCoefs, "coefs", "c", "", "coefficient file (YAML, JSON or name,value CSV)")
	_ = computeCmd.MarkFlagRequired("coefs")
	computeCmd.Flags().StringVar(&cmpPersonCol, "person-col", "", "person identifier column (overrides config)")
	computeCmd.Flags().StringVar(&cmpAltCol, "alt-col", "", "alternative code column (overrides config)")
	computeCmd.Flags().StringVar(&cmpTimeCol, "time-col", "", "travel time column (overrides config)")
	computeCmd.Flags().StringVar(&cmpCostCol, "cost-col", "", "travel cost column (overrides config)")
	computeCmd.Flags().StringSliceVar(&cmpPersonVars, "person-vars", nil, "comma-separated socio-demographic columns (overrides config)")
	computeCmd.Flags().StringVarP(&cmpGroupCol, "group-col", "g", "", "grouping column (overrides config)")
	computeCmd.Flags().StringVar(&cmpDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	computeCmd.Flags().StringVar(&cmpDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	computeCmd.Flags().StringVar(&cmpSheetName, "sheet-name", "", "XLSX: sheet name to read")
	computeCmd.Flags().IntVar(&cmpSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	computeCmd.Flags().BoolVar(&cmpAllowNoTime, "allow-missing-time", false, "let a missing travel time yield a NaN utility instead of failing")
	computeCmd.Flags().StringVar(&cmpDegenerate, "degenerate", "", "persons without a finite utility: propagate|exclude|fail")
	computeCmd.Flags().BoolVar(&cmpNoRelabel, "no-relabel", false, "keep 0/1 group labels instead of no/yes")
	computeCmd.Flags().StringVarP(&cmpFormat, "format", "f", "", "report format: markdown|json|csv (overrides config)")
	computeCmd.Flags().StringVarP(&cmpOutputPath, "output", "o", "", "write the report to this path instead of stdout")
	computeCmd.Flags().StringVar(&cmpPersonsOut, "persons-out", "", "write the per-person table as CSV to this path")
	computeCmd.Flags().StringVar(&cmpSQLitePath, "sqlite", "", "save the run to this SQLite database (overrides config)")
	computeCmd.Flags().IntVar(&cmpPersonRows, "person-rows", 10, "markdown: number of persons to list (0 hides the table)")
}

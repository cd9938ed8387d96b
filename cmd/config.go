package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	cfgpkg "github.com/KaramelBytes/logsum-cli/internal/config"
	"github.com/KaramelBytes/logsum-cli/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set logsum configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "person_col: %s\n", cfg.PersonCol)
		fmt.Fprintf(out, "alt_col: %s\n", cfg.AltCol)
		fmt.Fprintf(out, "time_col: %s\n", cfg.TimeCol)
		fmt.Fprintf(out, "cost_col: %s\n", cfg.CostCol)
		fmt.Fprintf(out, "person_vars: %s\n", strings.Join(cfg.PersonVars, ","))
		fmt.Fprintf(out, "group_col: %s\n", cfg.GroupCol)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		if cfg.Decimal != "" {
			fmt.Fprintf(out, "decimal: %s\n", cfg.Decimal)
		}
		fmt.Fprintf(out, "require_time: %t\n", cfg.RequireTime)
		fmt.Fprintf(out, "degenerate: %s\n", cfg.Degenerate)
		fmt.Fprintf(out, "relabel_boolean: %t\n", cfg.RelabelBoolean)
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if cfg.SQLitePath != "" {
			fmt.Fprintf(out, "sqlite_path: %s\n", cfg.SQLitePath)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "person_col":
			cfg.PersonCol = val
		case "alt_col":
			cfg.AltCol = val
		case "time_col":
			cfg.TimeCol = val
		case "cost_col":
			cfg.CostCol = val
		case "person_vars":
			cfg.PersonVars = cleanList(strings.Split(val, ","))
		case "group_col":
			cfg.GroupCol = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "decimal":
			if _, err := parseDecimal(val); err != nil {
				return err
			}
			cfg.Decimal = val
		case "require_time":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for require_time: %w", err)
			}
			cfg.RequireTime = b
		case "degenerate":
			p, err := accessibility.ParseDegeneratePolicy(val)
			if err != nil {
				return err
			}
			cfg.Degenerate = string(p)
		case "relabel_boolean":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for relabel_boolean: %w", err)
			}
			cfg.RelabelBoolean = b
		case "output_format":
			switch strings.ToLower(val) {
			case "markdown", "md":
				cfg.OutputFormat = "markdown"
			case "json", "csv":
				cfg.OutputFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid output_format: %s (use markdown, json or csv)", val)
			}
		case "sqlite_path":
			cfg.SQLitePath = val
		case "log_level":
			if _, err := logging.ParseLevel(val); err != nil {
				return err
			}
			cfg.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/logsum-cli/internal/accessibility"
	"github.com/KaramelBytes/logsum-cli/internal/dataset"
	"github.com/spf13/cobra"
)

var modesCoefs string

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List alternative codes and the coefficient names each mode uses",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var coefs accessibility.Coefficients
		if modesCoefs != "" {
			c, err := dataset.LoadCoefficients(modesCoefs)
			if err != nil {
				return err
			}
			coefs = c
		}
		for _, m := range accessibility.Modes() {
			var terms []string
			for _, kind := range []string{accessibility.KindASC, accessibility.KindTime, accessibility.KindCost} {
				if kind == accessibility.KindASC && m == accessibility.Reference {
					continue
				}
				name := accessibility.Term(kind, m)
				if coefs != nil {
					if v, ok := coefs.Lookup(name); ok {
						name = fmt.Sprintf("%s=%g", name, v)
					} else {
						name += "=(missing)"
					}
				}
				terms = append(terms, name)
			}
			ref := ""
			if m == accessibility.Reference {
				ref = " (reference)"
			}
			fmt.Fprintf(out, "%d  %-8s%s  %s\n", int(m), m, ref, strings.Join(terms, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
	modesCmd.Flags().StringVarP(&modesCoefs, "coefs", "c", "", "show values from this coefficient file")
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/compare"
	"github.com/actuclaim/actuclaim/internal/config"
)

var compareCmd = &cobra.Command{
	Use:   "compare [case-file]",
	Short: "Compare a case across the supported jurisdictions",
	Long: `Calculate the same case under each supported province and report the
differences in net pay, pre-judgment interest and total damages against a base.

Examples:
  actuclaim compare case.yaml
  actuclaim compare case.yaml --base "New Brunswick" --with NS,PEI
  actuclaim compare case.yaml --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		in, err := parser.LoadCaseFile(inputFile)
		if err != nil {
			return err
		}

		engine, _, err := newEngine(cmd)
		if err != nil {
			return err
		}

		base, _ := cmd.Flags().GetString("base")
		with, _ := cmd.Flags().GetString("with")
		outputFormat, _ := cmd.Flags().GetString("format")

		comparisonSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), *in, compare.CompareOptions{
			BaseJurisdiction: base,
			Jurisdictions:    splitList(with),
			CasePath:         inputFile,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatter := &compare.CSVFormatter{}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, output)

		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			output, err := formatter.Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, output)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(out, formatter.Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
		return nil
	},
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	compareCmd.Flags().String("base", "", "Base jurisdiction (default: the case's province)")
	compareCmd.Flags().String("with", "", "Comma-separated jurisdictions to compare (default: all others)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")

	rootCmd.AddCommand(compareCmd)
}

package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/internal/output"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [case-file]",
	Short: "Sweep the discount rate applied to future wage loss",
	Long: `Recalculate the present value of future wage loss and the total damages
across a range of discount rates. Rates are given in percent.

Examples:
  actuclaim sensitivity case.yaml
  actuclaim sensitivity case.yaml --min 1 --max 5 --steps 9
  actuclaim sensitivity case.yaml --output csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityMin          float64
	sensitivityMax          float64
	sensitivitySteps        int
	sensitivityOutputFormat string
)

func init() {
	sensitivityCmd.Flags().Float64Var(&sensitivityMin, "min", 0, "Lowest discount rate in percent")
	sensitivityCmd.Flags().Float64Var(&sensitivityMax, "max", 6, "Highest discount rate in percent")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", 7, "Number of rates in the sweep, including both ends")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "table", "Output format (table, csv, json)")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	in, err := config.NewInputParser().LoadCaseFile(args[0])
	if err != nil {
		return fmt.Errorf("error loading case: %w", err)
	}

	engine, _, err := newEngine(cmd)
	if err != nil {
		return err
	}

	analysis, err := calculation.NewSensitivityAnalyzer(engine).AnalyzeDiscountRate(*in, domain.SensitivityParameter{
		Name:     calculation.DiscountRateParameter,
		MinValue: decimal.NewFromFloat(sensitivityMin),
		MaxValue: decimal.NewFromFloat(sensitivityMax),
		Steps:    sensitivitySteps,
	})
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	formatted, err := output.NewSensitivityFormatter(sensitivityOutputFormat).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatted)
	return nil
}

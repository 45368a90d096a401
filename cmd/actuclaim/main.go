package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/output"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "actuclaim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "actuclaim",
	Short: "Economic damages calculator for Canadian personal injury claims",
	Long: `Calculates past and future lost wages, pre-judgment interest and the
present value of future losses for Nova Scotia, Newfoundland and Labrador,
New Brunswick and Prince Edward Island claims.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [case-file]",
	Short: "Calculate economic damages for a case",
	Long: `Calculate economic damages for a case file and print the report.

Examples:
  actuclaim calculate case.yaml
  actuclaim calculate case.yaml --format json
  actuclaim calculate case.yaml --format pdf --output reports/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		in, err := parser.LoadCaseFile(args[0])
		if err != nil {
			return err
		}

		engine, _, err := newEngine(cmd)
		if err != nil {
			return err
		}
		c, err := engine.Calculate(*in)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f, err := output.ResolveFormatter(outputFormat)
		if err != nil {
			return err
		}

		outputDir, _ := cmd.Flags().GetString("output")
		if outputDir == "" {
			if f.Name() == "pdf" {
				return fmt.Errorf("pdf reports need --output")
			}
			data, err := f.Format(c)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		path, err := output.WriteFormatted(f, c, outputDir, output.Extension(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [case-file]",
	Short: "Validate a case file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		in, err := parser.LoadCaseFile(inputFile)
		if err != nil {
			return err
		}

		for _, w := range parser.CaseWarnings(in) {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Case file %s is valid\n", inputFile)
		return nil
	},
}

var pjiCmd = &cobra.Command{
	Use:   "pji",
	Short: "Calculate pre-judgment interest on an amount",
	Long: `Calculate pre-judgment interest on an amount between the loss date and
the calculation date, using the average stored rate over that period.

Examples:
  actuclaim pji --amount 25000 --loss-date 2022-03-01
  actuclaim pji --amount 25000 --loss-date 2022-03-01 --rate 3
  actuclaim pji --amount 25000 --loss-date 2022-03-01 --simple`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		amountFlag, _ := cmd.Flags().GetString("amount")
		amount, ok := money.TryParse(amountFlag)
		if !ok {
			return fmt.Errorf("--amount %q is not a number", amountFlag)
		}

		lossFlag, _ := cmd.Flags().GetString("loss-date")
		lossDate, ok := dateutil.Parse(lossFlag)
		if !ok {
			return fmt.Errorf("--loss-date %q is not a recognised date", lossFlag)
		}

		calculationDate := dateutil.Day(time.Now())
		if s, _ := cmd.Flags().GetString("calculation-date"); s != "" {
			if calculationDate, ok = dateutil.Parse(s); !ok {
				return fmt.Errorf("--calculation-date %q is not a recognised date", s)
			}
		}
		if calculationDate.Before(lossDate) {
			return fmt.Errorf("calculation date %s is before the loss date %s",
				calculationDate.Format(dateutil.ISO), lossDate.Format(dateutil.ISO))
		}

		engine, _, err := newEngine(cmd)
		if err != nil {
			return err
		}

		simple, _ := cmd.Flags().GetBool("simple")
		var explicit *decimal.Decimal
		if s, _ := cmd.Flags().GetString("rate"); s != "" {
			if simple {
				return fmt.Errorf("--rate cannot be combined with --simple")
			}
			rate, ok := money.TryParse(s)
			if !ok {
				return fmt.Errorf("--rate %q is not a number", s)
			}
			explicit = &rate
		}

		result := engine.PJI.Calculate(amount, lossDate, calculationDate, explicit)
		method := "compound"
		if simple {
			result = engine.PJI.CalculateSimple(amount, lossDate, calculationDate)
			method = "simple"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "PRE-JUDGMENT INTEREST")
		fmt.Fprintln(out, "=====================")
		fmt.Fprintf(out, "Principal:        %s\n", money.Format(result.Principal))
		fmt.Fprintf(out, "Period:           %s to %s (%.2f years)\n",
			result.LossDate.Format(dateutil.ISO), result.CalculationDate.Format(dateutil.ISO), result.YearsElapsed)
		fmt.Fprintf(out, "Rate:             %s (%s interest)\n", money.Percent(result.RatePercent), method)
		fmt.Fprintf(out, "Interest:         %s\n", money.Format(result.Interest))
		fmt.Fprintf(out, "Total:            %s\n", money.Format(result.Total))
		if result.FallbackRate {
			fmt.Fprintln(out, "Note: no stored rates cover this period; the default rate was used.")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("settings", "", "Path to a settings file (defaults apply when omitted)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html, pdf)")
	calculateCmd.Flags().StringP("output", "o", "", "Directory to write the report to instead of stdout")

	pjiCmd.Flags().String("amount", "", "Principal amount (required)")
	pjiCmd.Flags().String("loss-date", "", "Date of loss (required)")
	pjiCmd.Flags().String("calculation-date", "", "Calculation date (default: today)")
	pjiCmd.Flags().String("rate", "", "Explicit annual rate in percent, overriding the stored rates")
	pjiCmd.Flags().Bool("simple", false, "Use simple interest at the stored average rate")
	_ = pjiCmd.MarkFlagRequired("amount")
	_ = pjiCmd.MarkFlagRequired("loss-date")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(pjiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

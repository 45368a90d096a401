package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/rates"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
)

func init() {
	initRatesCommand()
}

func initRatesCommand() {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage the short-term government rate series",
		Long:  "Maintenance of the Treasury bill rate series used for pre-judgment interest.",
	}

	loadCmd := &cobra.Command{
		Use:   "load [csv-file]",
		Short: "Import a date,rate CSV into the configured rate store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file %s: %w", args[0], err)
			}
			defer file.Close()

			points, err := rates.ReadCSV(file)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				return fmt.Errorf("%s: %w", args[0], rates.ErrNoData)
			}

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), settings, loggerFor(cmd))
			if err != nil {
				return err
			}

			added, updated := store.Upsert(points)
			if err := store.Save(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d rates from %s (%d added, %d updated)\n", len(points), args[0], added, updated)
			fmt.Fprintf(out, "Series now holds %d rates\n", store.Len())
			printIssues(cmd, store)
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Display summary statistics of the rate series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadedStore(cmd)
			if err != nil {
				return err
			}

			stats := store.Statistics()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Rate Series Statistics")
			fmt.Fprintf(out, "  Points:  %d\n", stats.Count)
			fmt.Fprintf(out, "  Range:   %s to %s\n", stats.Earliest.Format(dateutil.ISO), stats.Latest.Format(dateutil.ISO))
			fmt.Fprintf(out, "  Mean:    %s\n", money.Percent(stats.Mean))
			fmt.Fprintf(out, "  Median:  %s\n", money.Percent(stats.Median))
			fmt.Fprintf(out, "  Std Dev: %s\n", money.Percent(stats.StdDev))
			fmt.Fprintf(out, "  Min:     %s\n", money.Percent(stats.Min))
			fmt.Fprintf(out, "  Max:     %s\n", money.Percent(stats.Max))
			if len(stats.MissingMonths) > 0 {
				fmt.Fprintf(out, "  Months without data: %d\n", len(stats.MissingMonths))
				for _, m := range stats.MissingMonths {
					fmt.Fprintf(out, "    - %s\n", m)
				}
			}
			return nil
		},
	}

	averageCmd := &cobra.Command{
		Use:   "average",
		Short: "Average stored rate between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startFlag, _ := cmd.Flags().GetString("start")
			start, ok := dateutil.Parse(startFlag)
			if !ok {
				return fmt.Errorf("--start %q is not a recognised date", startFlag)
			}
			end := dateutil.Day(time.Now())
			if s, _ := cmd.Flags().GetString("end"); s != "" {
				if end, ok = dateutil.Parse(s); !ok {
					return fmt.Errorf("--end %q is not a recognised date", s)
				}
			}
			if end.Before(start) {
				return fmt.Errorf("end %s is before start %s", end.Format(dateutil.ISO), start.Format(dateutil.ISO))
			}

			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), settings, loggerFor(cmd))
			if err != nil {
				return err
			}

			lookup := store.AverageRate(start, end)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Average rate %s to %s: %s\n",
				lookup.Start.Format(dateutil.ISO), lookup.End.Format(dateutil.ISO), money.Percent(lookup.Rate))
			fmt.Fprintf(out, "  Points: %d\n", lookup.Points)
			fmt.Fprintf(out, "  Source: %s\n", lookup.Source)
			if lookup.Fallback {
				fmt.Fprintln(out, "  No stored rate covers this period; the default rate applies.")
			}
			return nil
		},
	}
	averageCmd.Flags().String("start", "", "First day of the period (required)")
	averageCmd.Flags().String("end", "", "Last day of the period (default: today)")
	_ = averageCmd.MarkFlagRequired("start")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch recent rates from the Bank of Canada into the rate store",
		Long: `Fetch the recent Treasury bill windows from the Bank of Canada, fill the
1st, 15th and month-end anchor dates from their nearest neighbours and save the
series when anything changed. Failed fetches are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logger := loggerFor(cmd)
			store, err := openStore(cmd.Context(), settings, logger)
			if err != nil {
				return err
			}

			fetcher := rates.NewBankOfCanadaFetcher(settings.Source.URL, settings.Source.Timeout)
			fetcher.Logger = logger
			refresher := rates.NewRefresher(store, fetcher)
			refresher.Logger = logger
			report, err := refresher.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fetched %d rates over %d windows\n", report.Fetched, len(report.Windows))
			fmt.Fprintf(out, "  Added:   %d\n", report.Added)
			fmt.Fprintf(out, "  Updated: %d\n", report.Updated)
			for _, anchor := range report.AnchorsFilled {
				fmt.Fprintf(out, "  Filled anchor %s\n", anchor.Format(dateutil.ISO))
			}
			if report.CarriedForward {
				fmt.Fprintln(out, "  Nothing fetched; the latest rate was carried forward to today")
			}
			if report.Saved {
				fmt.Fprintf(out, "Series saved (%d rates)\n", store.Len())
			} else {
				fmt.Fprintln(out, "Series unchanged")
			}
			return nil
		},
	}

	validateRatesCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the rate series for implausible values and gaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			printIssues(cmd, store)
			return nil
		},
	}

	ratesCmd.AddCommand(loadCmd)
	ratesCmd.AddCommand(statsCmd)
	ratesCmd.AddCommand(averageCmd)
	ratesCmd.AddCommand(refreshCmd)
	ratesCmd.AddCommand(validateRatesCmd)
	rootCmd.AddCommand(ratesCmd)
}

// loadedStore opens the configured store and requires it to hold data.
func loadedStore(cmd *cobra.Command) (*rates.Store, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cmd.Context(), settings, loggerFor(cmd))
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("no rates stored: %w", rates.ErrNoData)
	}
	return store, nil
}

func printIssues(cmd *cobra.Command, store *rates.Store) {
	out := cmd.OutOrStdout()
	issues, err := store.ValidateDataQuality()
	switch {
	case errors.Is(err, rates.ErrNoData):
		fmt.Fprintln(out, "Data quality: series is empty")
	case len(issues) == 0:
		fmt.Fprintln(out, "Data quality: no issues found")
	default:
		fmt.Fprintf(out, "Data quality issues found (%d):\n", len(issues))
		for _, issue := range issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
	}
}

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/config"
	"github.com/actuclaim/actuclaim/internal/rates"
	"github.com/actuclaim/actuclaim/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "actuclaim-tui [case-file]",
	Short: "Interactive economic damages calculator",
	Long:  "Enter or load a case, review the damages, sweep the discount rate and compare jurisdictions.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without a case file the form starts empty.
		casePath := ""
		if len(args) == 1 {
			casePath = args[0]
			if _, err := os.Stat(casePath); os.IsNotExist(err) {
				return fmt.Errorf("case file not found: %s", casePath)
			}
		}

		settingsPath, _ := cmd.Flags().GetString("settings")
		settings, err := config.NewInputParser().LoadSettings(settingsPath)
		if err != nil {
			return err
		}

		var source calculation.RateSource
		repo, err := rates.NewRepository(cmd.Context(), settings.Rates)
		if err == nil {
			store := rates.NewStore(repo)
			if err = store.Load(cmd.Context()); err == nil || errors.Is(err, rates.ErrNoData) {
				source = store
			}
		}
		if source == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not load rate series (%v); PJI will use the default rate\n", err)
		}

		model := tui.NewModel(calculation.NewDamagesEngine(source), casePath, settings.ReportDir)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().String("settings", "", "Path to a settings file (defaults apply when omitted)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

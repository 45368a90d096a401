package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of case files and settings files
type InputParser struct {
	// Getenv reads environment overrides. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Getenv: os.Getenv}
}

// LoadCaseFile loads a damages case from a YAML or JSON file
func (ip *InputParser) LoadCaseFile(filename string) (*domain.CaseInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseCase(data)
}

// ParseCase decodes and validates a case document.
func (ip *InputParser) ParseCase(data []byte) (*domain.CaseInput, error) {
	var in domain.CaseInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateCase(&in); err != nil {
		return nil, fmt.Errorf("case validation failed: %w", err)
	}
	return &in, nil
}

// ValidateCase rejects cases that cannot be calculated meaningfully: an
// unknown province or no income figure at all. Everything else is defaulted
// by the engine; see CaseWarnings.
func (ip *InputParser) ValidateCase(in *domain.CaseInput) error {
	if strings.TrimSpace(in.Province) == "" {
		return fmt.Errorf("province is required")
	}
	if _, err := domain.ParseJurisdiction(in.Province); err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(in.EmploymentType), "hourly") {
		if _, ok := money.TryParse(in.HourlyRate); !ok {
			return fmt.Errorf("hourly_rate is required for hourly employment")
		}
		return nil
	}
	if _, ok := money.TryParse(in.Salary); !ok {
		return fmt.Errorf("salary is required for salaried employment")
	}
	return nil
}

// CaseWarnings lists optional fields that are present but malformed and will
// be replaced by defaults during calculation.
func (ip *InputParser) CaseWarnings(in *domain.CaseInput) []string {
	var warnings []string

	dates := []struct{ name, value string }{
		{"loss_date", in.LossDate},
		{"start_date", in.StartDate},
		{"end_date", in.EndDate},
		{"birthdate", in.BirthDate},
		{"ei_benefits_start_date", in.EIStartDate},
	}
	for _, f := range dates {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, ok := dateutil.Parse(f.value); !ok {
			warnings = append(warnings, fmt.Sprintf("%s %q is not a recognised date", f.name, f.value))
		}
	}

	amounts := []struct{ name, value string }{
		{"hours_per_week", in.HoursPerWeek},
		{"hours_per_day", in.HoursPerDay},
		{"missed_time", in.MissedTime},
		{"pji_rate", in.PJIRate},
		{"discount_rate", in.DiscountRate},
		{"ei_benefits_to_date", in.EIBenefitsToDate},
		{"section_b_to_date", in.SectionBToDate},
		{"ltd_benefits_to_date", in.LTDBenefitsToDate},
		{"cppd_benefits_to_date", in.CPPDBenefitsToDate},
		{"other_benefits_to_date", in.OtherBenefitsToDate},
		{"ei_benefits_annual", in.EIBenefitsAnnual},
		{"section_b_annual", in.SectionBAnnual},
		{"ltd_benefits_annual", in.LTDBenefitsAnnual},
		{"cppd_benefits_annual", in.CPPDBenefitsAnnual},
		{"other_benefits_annual", in.OtherBenefitsAnnual},
	}
	for _, f := range amounts {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, ok := money.TryParse(f.value); !ok {
			warnings = append(warnings, fmt.Sprintf("%s %q is not a number and will be treated as 0", f.name, f.value))
		}
	}

	integers := []struct{ name, value string }{
		{"working_days", in.WorkingDays},
		{"dependents", in.Dependents},
		{"retirement_age", in.RetirementAge},
	}
	for _, f := range integers {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(f.value)); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s %q is not a whole number", f.name, f.value))
		}
	}

	if _, ok := domain.ParseTimeUnit(in.MissedTimeUnit); !ok {
		warnings = append(warnings, fmt.Sprintf("missed_time_unit %q is not one of days, hours, weeks, months", in.MissedTimeUnit))
	}
	return warnings
}

// DefaultSettings returns settings for a local file-backed installation.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Rates: domain.RateStoreSettings{
			Backend: "file",
			Path:    "data/tbill_rates.csv",
		},
		Source: domain.RateSourceSettings{
			URL:     "https://www.bankofcanada.ca/rates/interest-rates/lookup-bond-yields/",
			Timeout: 30 * time.Second,
		},
		Server:    domain.ServerSettings{Addr: ":8080"},
		ReportDir: "reports",
	}
}

// LoadSettings reads a settings file over the defaults, then applies
// environment overrides. An empty filename skips the file.
func (ip *InputParser) LoadSettings(filename string) (*domain.Settings, error) {
	settings := DefaultSettings()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := ip.ApplyEnv(&settings); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}
	if err := ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &settings, nil
}

// ApplyEnv overrides settings from ACTUCLAIM_* variables. AWS_REGION and
// AWS_ENDPOINT_URL are honoured when the ACTUCLAIM_ forms are unset.
func (ip *InputParser) ApplyEnv(s *domain.Settings) error {
	getenv := ip.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get("ACTUCLAIM_RATES_BACKEND"); ok {
		s.Rates.Backend = v
	}
	if v, ok := get("ACTUCLAIM_RATES_PATH"); ok {
		s.Rates.Path = v
	}
	if v, ok := get("ACTUCLAIM_RATES_BUCKET"); ok {
		s.Rates.Bucket = v
	}
	if v, ok := get("ACTUCLAIM_RATES_KEY"); ok {
		s.Rates.Key = v
	}
	if v, ok := get("ACTUCLAIM_RATES_REGION", "AWS_REGION"); ok {
		s.Rates.Region = v
	}
	if v, ok := get("ACTUCLAIM_RATES_ENDPOINT", "AWS_ENDPOINT_URL"); ok {
		s.Rates.Endpoint = v
	}
	if v, ok := get("ACTUCLAIM_SOURCE_URL"); ok {
		s.Source.URL = v
	}
	if v, ok := get("ACTUCLAIM_SOURCE_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ACTUCLAIM_SOURCE_TIMEOUT: %w", err)
		}
		s.Source.Timeout = timeout
	}
	if v, ok := get("ACTUCLAIM_ADDR"); ok {
		s.Server.Addr = v
	}
	if v, ok := get("ACTUCLAIM_REPORT_DIR"); ok {
		s.ReportDir = v
	}
	return nil
}

// ValidateSettings checks the rate store and source configuration.
func ValidateSettings(s *domain.Settings) error {
	var errs []error
	switch s.Rates.Backend {
	case "", "file":
		if s.Rates.Path == "" {
			errs = append(errs, fmt.Errorf("rates.path is required for the file backend"))
		}
	case "s3":
		if s.Rates.Bucket == "" || s.Rates.Key == "" {
			errs = append(errs, fmt.Errorf("rates.bucket and rates.key are required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown rates.backend %q (expected file or s3)", s.Rates.Backend))
	}
	if s.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source.timeout must not be negative"))
	}
	return errors.Join(errs...)
}

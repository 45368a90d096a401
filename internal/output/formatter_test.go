package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestCase() *domain.DamagesCase {
	calculated := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	return &domain.DamagesCase{
		ID:           "3f1c9a52-0000-4000-8000-000000000001",
		ClientName:   "Jane Doe",
		Jurisdiction: domain.NovaScotia,
		CalculatedAt: calculated,
		TakeHome: domain.TakeHomeResult{
			Jurisdiction:    domain.NovaScotia,
			GrossIncome:     d("80000"),
			FederalTax:      d("10971.57"),
			ProvincialTax:   d("9749.88"),
			CPP:             d("3867.50"),
			CPP2:            d("188.00"),
			EI:              d("1049.12"),
			TotalDeductions: d("25826.07"),
			NetPay:          d("54173.93"),
			DailyNet:        d("214.98"),
			HourlyNet:       d("26.87"),
			WeeklyNet:       d("1041.81"),
			MonthlyNet:      d("4514.49"),
			WorkingDays:     252,
		},
		MissedTime:          domain.MissedTime{Amount: d("30"), Unit: domain.Days},
		GrossMissedPay:      d("6449.40"),
		CollateralDeduction: d("0"),
		NetPastLostWages:    d("6449.40"),
		PJI: domain.PJIResult{
			LossDate:     calculated.AddDate(-1, 0, 0),
			YearsElapsed: 1.0,
			RatePercent:  d("2"),
			Principal:    d("6449.40"),
			Interest:     d("128.99"),
			Total:        d("6578.39"),
			ExplicitRate: true,
		},
		ReturnStatus: domain.ReturningToWork,
		StartDate:    calculated,
		EndDate:      calculated.AddDate(1, 0, 0),
		FutureWages: domain.PresentValueResult{
			Requested:        true,
			AnnualNetLoss:    d("54173.93"),
			MonthlyNetLoss:   d("4514.49"),
			TimeHorizonYears: 1.0,
			TotalMonths:      12,
			DiscountRate:     d("0.035"),
			PresentValue:     d("53195.70"),
		},
		TotalDamages: d("59774.09"),
		Notes: []domain.Note{
			{Code: domain.NoteDefaultDiscountRate, Message: "Discount rate not provided; using the Nova Scotia default of 3.5%."},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	var received *domain.DamagesCase
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(c *domain.DamagesCase) ([]byte, error) {
			called = true
			received = c
			return []byte("test output"), nil
		},
	}

	c := buildTestCase()
	out, err := formatter.Format(c)

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Same(t, c, received, "Should pass the case")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", formatter.Name())
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	formatter := FormatterFunc{ID: "test", F: func(*domain.DamagesCase) ([]byte, error) {
		return []byte("test output content"), nil
	}}

	filename, err := WriteFormatted(formatter, buildTestCase(), dir, "txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "damages_report_Jane_Doe_20240615_000000.txt"), filename)
	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{ID: "error-formatter", F: func(*domain.DamagesCase) ([]byte, error) {
		return nil, errors.New("formatter error")
	}}

	filename, err := WriteFormatted(formatter, buildTestCase(), t.TempDir(), "txt")

	assert.Error(t, err)
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error")
}

func TestFileSafe(t *testing.T) {
	assert.Equal(t, "Jane_Doe", fileSafe("Jane Doe"))
	assert.Equal(t, "ORourke", fileSafe("O'Rourke"))
	assert.Equal(t, "client", fileSafe("  "))
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "verbose")

	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"TEXT", "console"},
		{"verbose", "console"},
		{" json ", "json"},
		{"htm", "html"},
		{"pdf", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("docx"))
	_, err := ResolveFormatter("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "txt", Extension(ConsoleFormatter{}))
	assert.Equal(t, "pdf", Extension(PDFFormatter{}))
}

func TestTakeHomeLines_Labels(t *testing.T) {
	lines := TakeHomeLines(buildTestCase().TakeHome)

	labels := make([]string, len(lines))
	for i, l := range lines {
		labels[i] = l.Label
	}
	assert.Equal(t, []string{
		"Gross Income", "Federal Tax", "Nova Scotia Tax", "CPP Contribution", "CPP2 Contribution",
		"EI Contribution", "Dependent Benefit", "Total Deductions",
		"Net Pay (Provincially specific deductions for damages)",
		"Daily Net Pay", "Hourly Net Pay", "Weekly Net Pay", "Monthly Net Pay", "Working Days",
	}, labels)
	assert.Equal(t, "$80,000.00", lines[0].Value)
	assert.Equal(t, "80000.00", lines[0].Raw)
	assert.Equal(t, "252", lines[13].Value)
}

func TestCollateralLines_EILimit(t *testing.T) {
	c := domain.CollateralBenefits{}
	assert.Len(t, CollateralLines(c), 12)

	c.EILimit = &domain.EILimitation{
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DaysUsed:      60,
		RemainingDays: 122,
		FuturePortion: d("0.334246575"),
	}
	lines := CollateralLines(c)
	require.Len(t, lines, 16)
	assert.Equal(t, Line{Label: "EI Start Date", Value: "2024-01-01", Raw: "2024-01-01"}, lines[12])
	assert.Equal(t, "0.3342", lines[15].Value)
}

func TestSections_Placeholders(t *testing.T) {
	c := buildTestCase()
	sections := Sections(c)

	personal := findSection(t, sections, "Personal Information")
	assert.Equal(t, NotSpecified, findLine(t, personal, "Date of Birth").Value)
	assert.Equal(t, NotSpecified, findLine(t, personal, "Retirement Age").Value)
	assert.Equal(t, "3.50%", findLine(t, personal, "Discount Rate").Value)
	assert.Equal(t, "30 days", findLine(t, personal, "Time Missed").Value)

	c.BirthDate = time.Date(1980, 3, 9, 0, 0, 0, 0, time.UTC)
	c.RetirementAge = 65
	personal = findSection(t, Sections(c), "Personal Information")
	assert.Equal(t, "1980-03-09", findLine(t, personal, "Date of Birth").Value)
	assert.Equal(t, "65", findLine(t, personal, "Retirement Age").Value)
}

func TestSections_JurisdictionNotes(t *testing.T) {
	c := buildTestCase()
	c.Jurisdiction = domain.PrinceEdwardIsland
	assert.Contains(t, findSection(t, Sections(c), "Income & Deductions").Note, "gross salary")

	c.Jurisdiction = domain.NewBrunswick
	assert.Contains(t, findSection(t, Sections(c), "Collateral Benefits").Note, "LTD and CPPD")
}

func TestSections_FutureNotClaimed(t *testing.T) {
	c := buildTestCase()
	c.FutureWages = domain.PresentValueResult{}

	future := findSection(t, Sections(c), "Future Wage Loss")
	require.Len(t, future.Lines, 1)
	assert.Equal(t, "Not claimed", future.Lines[0].Value)
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestCase())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "ECONOMIC DAMAGES CALCULATION")
	assert.Contains(t, content, "INCOME & DEDUCTIONS")
	assert.Contains(t, content, "Nova Scotia Tax:")
	assert.Contains(t, content, "Total Economic Damages:")
	assert.Contains(t, content, "$59,774.09")
	assert.Contains(t, content, "ASSUMPTIONS & ADJUSTMENTS")
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestCase())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Jane Doe", decoded["clientName"])
	assert.Equal(t, "nova scotia", decoded["jurisdiction"])
	assert.Contains(t, string(out), "\"totalDamages\"")
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestCase())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Section", "Item", "Value"}, records[0])
	assert.Contains(t, records, []string{"Summary", "Total Economic Damages", "59774.09"})
	assert.Contains(t, records, []string{"Notes", domain.NoteDefaultDiscountRate, "Discount rate not provided; using the Nova Scotia default of 3.5%."})
}

func TestHTMLFormatter_Format(t *testing.T) {
	c := buildTestCase()
	c.ClientName = "<script>x</script>"
	out, err := HTMLFormatter{}.Format(c)
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "Economic Damages Report")
	assert.Contains(t, content, "Total Economic Damages: $59,774.09")
	assert.Contains(t, content, "Nova Scotia Tax")
	assert.NotContains(t, content, "<script>x</script>", "Client name must be escaped")
}

func TestPDFFormatter_Format(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestCase())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "Should produce a PDF document")
}

func findSection(t *testing.T, sections []Section, title string) Section {
	t.Helper()
	for _, s := range sections {
		if s.Title == title {
			return s
		}
	}
	t.Fatalf("section %q not found", title)
	return Section{}
}

func findLine(t *testing.T, s Section, label string) Line {
	t.Helper()
	for _, l := range s.Lines {
		if l.Label == label {
			return l
		}
	}
	t.Fatalf("line %q not found in %s", label, s.Title)
	return Line{}
}

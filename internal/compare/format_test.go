package compare

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/domain"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		ClientName:       "Jane Doe",
		BaseJurisdiction: domain.NovaScotia,
		CasePath:         "/path/to/case.yaml",
		BaseResult: &ComparisonResult{
			Jurisdiction: domain.NovaScotia,
			NetPay:       decimal.NewFromInt(54174),
			PJITotal:     decimal.NewFromInt(6578),
			PresentValue: decimal.NewFromInt(53196),
			TotalDamages: decimal.NewFromInt(59774),
		},
		AlternativeResults: []ComparisonResult{
			{
				Jurisdiction:       domain.PrinceEdwardIsland,
				NetPay:             decimal.NewFromInt(80000),
				PJITotal:           decimal.NewFromInt(9716),
				PresentValue:       decimal.NewFromInt(78555),
				TotalDamages:       decimal.NewFromInt(88271),
				NetPayDiffFromBase: decimal.NewFromInt(25826),
				PJIDiffFromBase:    decimal.NewFromInt(3138),
				TotalDiffFromBase:  decimal.NewFromInt(28497),
				TotalPctFromBase:   decimal.NewFromFloat(47.67),
				FallbackRateUsed:   true,
			},
		},
		Recommendations: []string{
			"Highest Award: Prince Edward Island yields $28,497.00 more than Nova Scotia",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}
	for _, want := range []string{
		"JURISDICTION COMPARISON",
		"Base Jurisdiction: Nova Scotia",
		"Case File: /path/to/case.yaml",
		"Nova Scotia (base)",
		"Prince Edward Island*",
		"$88.3K",
		"Total Damages:    +$28,497.00 (47.7%)",
		"OBSERVATIONS",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}

	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	result := formatter.Format(set)

	if !contains(result, "Nova Scotia (base)") {
		t.Error("Expected base jurisdiction in table")
	}
	if contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have a comparison section without alternatives")
	}
	if contains(result, "OBSERVATIONS") {
		t.Error("Should not have an observations section without recommendations")
	}
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(999), "999"},
		{decimal.NewFromInt(54174), "54.2K"},
		{decimal.NewFromInt(1250000), "1.25M"},
		{decimal.NewFromInt(-2500), "-2.5K"},
	}
	for _, tt := range tests {
		if got := formatter.formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	set := sampleSet()
	set.AlternativeResults = append(set.AlternativeResults, ComparisonResult{
		Jurisdiction:      domain.Newfoundland,
		TotalDiffFromBase: decimal.NewFromInt(-1500),
	})

	result := formatter.FormatCompact(set)

	expected := "Base: Nova Scotia | Prince Edward Island: +$28.5K | Newfoundland: -$1.5K"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Jurisdiction,Type,Net Pay") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Nova Scotia,base,54174.00") {
		t.Errorf("Unexpected base row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[2], "28497.00,47.67") {
		t.Errorf("Unexpected alternative row: %s", lines[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	set := sampleSet()

	compact, err := (&JSONFormatter{}).Format(set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if contains(compact, "\n") {
		t.Error("Expected compact JSON on one line")
	}
	if !contains(compact, `"baseJurisdiction":"nova scotia"`) {
		t.Errorf("Expected base jurisdiction in JSON: %s", compact)
	}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(set)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !contains(pretty, "\n  \"jurisdictions\"") {
		t.Error("Expected indented JSON")
	}

	var doc struct {
		HighestAward  string          `json:"highestAward"`
		LowestAward   string          `json:"lowestAward"`
		AwardSpread   decimal.Decimal `json:"awardSpread"`
		Jurisdictions []struct {
			Name              string          `json:"name"`
			Base              bool            `json:"base"`
			TotalDiffFromBase decimal.Decimal `json:"totalDiffFromBase"`
		} `json:"jurisdictions"`
	}
	if err := json.Unmarshal([]byte(pretty), &doc); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if doc.HighestAward != string(domain.PrinceEdwardIsland) || doc.LowestAward != string(domain.NovaScotia) {
		t.Errorf("Unexpected award range: %s to %s", doc.LowestAward, doc.HighestAward)
	}
	if !doc.AwardSpread.Equal(decimal.NewFromInt(28497)) {
		t.Errorf("Expected spread 28497, got %s", doc.AwardSpread)
	}
	if len(doc.Jurisdictions) != 2 || !doc.Jurisdictions[0].Base || doc.Jurisdictions[0].Name != "Nova Scotia" {
		t.Errorf("Expected base jurisdiction first: %+v", doc.Jurisdictions)
	}
	if !doc.Jurisdictions[1].TotalDiffFromBase.Equal(decimal.NewFromInt(28497)) {
		t.Errorf("Unexpected delta: %s", doc.Jurisdictions[1].TotalDiffFromBase)
	}

	if _, err := (&JSONFormatter{}).Format(&ComparisonSet{}); err == nil {
		t.Error("Expected error for a comparison without a base result")
	}
}

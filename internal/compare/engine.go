package compare

import (
	"context"
	"fmt"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/domain"
)

// CompareEngine runs one case under several jurisdictions
type CompareEngine struct {
	CalcEngine        *calculation.DamagesEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.DamagesEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// BaseJurisdiction defaults to the case's own province.
	BaseJurisdiction string
	// Jurisdictions to compare against; empty means every other supported province.
	Jurisdictions []string
	CasePath      string
}

// Compare calculates the case under the base jurisdiction and each alternative
func (ce *CompareEngine) Compare(ctx context.Context, in domain.CaseInput, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseJurisdiction
	if baseName == "" {
		baseName = in.Province
	}
	base, err := domain.ParseJurisdiction(baseName)
	if err != nil {
		return nil, fmt.Errorf("invalid base jurisdiction: %w", err)
	}

	alternatives, err := alternativesFor(base, options.Jurisdictions)
	if err != nil {
		return nil, err
	}

	baseCase, err := ce.calculateFor(in, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base jurisdiction: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseCase)

	results := []ComparisonResult{}
	for _, j := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}
		altCase, err := ce.calculateFor(in, j)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", j.DisplayName(), err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(altCase)
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		ClientName:         baseCase.ClientName,
		BaseJurisdiction:   base,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		CasePath:           options.CasePath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) calculateFor(in domain.CaseInput, j domain.Jurisdiction) (*domain.DamagesCase, error) {
	in.Province = string(j)
	return ce.CalcEngine.Calculate(in)
}

func alternativesFor(base domain.Jurisdiction, names []string) ([]domain.Jurisdiction, error) {
	if len(names) == 0 {
		var out []domain.Jurisdiction
		for _, j := range domain.Jurisdictions {
			if j != base {
				out = append(out, j)
			}
		}
		return out, nil
	}

	seen := map[domain.Jurisdiction]bool{base: true}
	var out []domain.Jurisdiction
	for _, n := range names {
		j, err := domain.ParseJurisdiction(n)
		if err != nil {
			return nil, err
		}
		if seen[j] {
			continue
		}
		seen[j] = true
		out = append(out, j)
	}
	return out, nil
}

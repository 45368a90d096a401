package compare

import (
	"errors"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/actuclaim/actuclaim/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// jurisdictionEntry is one row of the JSON comparison, base first.
type jurisdictionEntry struct {
	Name string `json:"name"`
	Base bool   `json:"base"`
	ComparisonResult
}

type comparisonDocument struct {
	ClientName       string              `json:"clientName"`
	CasePath         string              `json:"casePath,omitempty"`
	BaseJurisdiction domain.Jurisdiction `json:"baseJurisdiction"`
	Jurisdictions    []jurisdictionEntry `json:"jurisdictions"`
	HighestAward     domain.Jurisdiction `json:"highestAward"`
	LowestAward      domain.Jurisdiction `json:"lowestAward"`
	AwardSpread      decimal.Decimal     `json:"awardSpread"`
	Recommendations  []string            `json:"recommendations"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil || compSet.BaseResult == nil {
		return "", errors.New("comparison has no base result")
	}

	doc := comparisonDocument{
		ClientName:       compSet.ClientName,
		CasePath:         compSet.CasePath,
		BaseJurisdiction: compSet.BaseJurisdiction,
		Recommendations:  compSet.Recommendations,
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []string{}
	}

	base := *compSet.BaseResult
	highest, lowest := base, base
	doc.Jurisdictions = append(doc.Jurisdictions, jurisdictionEntry{Name: base.Name(), Base: true, ComparisonResult: base})
	for _, alt := range compSet.AlternativeResults {
		doc.Jurisdictions = append(doc.Jurisdictions, jurisdictionEntry{Name: alt.Name(), ComparisonResult: alt})
		if alt.TotalDamages.GreaterThan(highest.TotalDamages) {
			highest = alt
		}
		if alt.TotalDamages.LessThan(lowest.TotalDamages) {
			lowest = alt
		}
	}
	doc.HighestAward = highest.Jurisdiction
	doc.LowestAward = lowest.Jurisdiction
	doc.AwardSpread = highest.TotalDamages.Sub(lowest.TotalDamages)

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

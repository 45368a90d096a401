package rates

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Statistics summarizes the stored series.
type Statistics struct {
	Count    int             `json:"count"`
	Earliest time.Time       `json:"earliest"`
	Latest   time.Time       `json:"latest"`
	Mean     decimal.Decimal `json:"mean"`
	Median   decimal.Decimal `json:"median"`
	StdDev   decimal.Decimal `json:"stdDev"`
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	// MissingMonths lists YYYY-MM months inside the series span with no point.
	MissingMonths []string `json:"missingMonths"`
}

// maxPlausibleRate bounds what ValidateDataQuality accepts as a percent rate.
var maxPlausibleRate = decimal.NewFromInt(25)

// maxGapDays is the longest gap between consecutive points before it is reported.
const maxGapDays = 45

// Statistics computes summary statistics over the series.
func (s *Store) Statistics() Statistics {
	return calculateStatistics(s.Points())
}

func calculateStatistics(points []domain.RatePoint) Statistics {
	if len(points) == 0 {
		return Statistics{}
	}

	values := make([]decimal.Decimal, len(points))
	sum := decimal.Zero
	for i, p := range points {
		values[i] = p.Rate
		sum = sum.Add(p.Rate)
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean := sum.Div(n)

	varianceSum := decimal.Zero
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	stdDev := decimal.NewFromFloat(math.Sqrt(varianceSum.Div(n).InexactFloat64()))

	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	median := values[len(values)/2]
	if len(values)%2 == 0 {
		median = values[len(values)/2-1].Add(values[len(values)/2]).Div(decimal.NewFromInt(2))
	}

	return Statistics{
		Count:         len(points),
		Earliest:      points[0].Date,
		Latest:        points[len(points)-1].Date,
		Mean:          mean.Round(4),
		Median:        median,
		StdDev:        stdDev.Round(4),
		Min:           values[0],
		Max:           values[len(values)-1],
		MissingMonths: missingMonths(points),
	}
}

func missingMonths(points []domain.RatePoint) []string {
	seen := make(map[string]bool)
	for _, p := range points {
		seen[p.Date.Format("2006-01")] = true
	}

	var missing []string
	first, last := points[0].Date, points[len(points)-1].Date
	for m := dateutil.Date(first.Year(), first.Month(), 1); !m.After(last); m = m.AddDate(0, 1, 0) {
		if key := m.Format("2006-01"); !seen[key] {
			missing = append(missing, key)
		}
	}
	return missing
}

// ValidateDataQuality reports implausible rates and large gaps. It returns
// ErrNoData for an empty series.
func (s *Store) ValidateDataQuality() ([]string, error) {
	points := s.Points()
	if len(points) == 0 {
		return nil, ErrNoData
	}

	var issues []string
	for i, p := range points {
		if p.Rate.IsNegative() {
			issues = append(issues, fmt.Sprintf("Negative rate on %s: %s", p.Date.Format(dateutil.ISO), p.Rate))
		}
		if p.Rate.GreaterThan(maxPlausibleRate) {
			issues = append(issues, fmt.Sprintf("Implausible rate on %s: %s%%", p.Date.Format(dateutil.ISO), p.Rate))
		}
		if i > 0 {
			if gap := dateutil.DaysBetween(points[i-1].Date, p.Date); gap > maxGapDays {
				issues = append(issues, fmt.Sprintf("Gap of %d days between %s and %s",
					gap, points[i-1].Date.Format(dateutil.ISO), p.Date.Format(dateutil.ISO)))
			}
		}
	}
	return issues, nil
}

// Package rates manages the short-term government rate series used for
// pre-judgment interest: persistence, range averaging and batch refresh.
package rates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrNoData is returned when the persisted series is missing or holds no usable rows.
var ErrNoData = errors.New("rate series has no data")

// DefaultRatePercent is returned when no stored point can answer a lookup.
var DefaultRatePercent = decimal.RequireFromString("2.5")

// Repository persists the rate series.
type Repository interface {
	// Load returns every stored point in any order. A missing series is ErrNoData.
	Load(ctx context.Context) ([]domain.RatePoint, error)
	// Save replaces the stored series.
	Save(ctx context.Context, points []domain.RatePoint) error
	// Name describes the backing location for logs.
	Name() string
}

// Store is an in-memory snapshot of the rate series, keyed by calendar day.
// Lookups may run concurrently; Upsert and Save are for the refresh job only.
type Store struct {
	repo   Repository
	mu     sync.RWMutex
	points []domain.RatePoint // ascending by date, one per day
	Logger calculation.Logger
}

// NewStore creates an empty store over repo.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo, Logger: calculation.NopLogger{}}
}

// SetLogger sets the logger, falling back to a no-op logger for nil.
func (s *Store) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	s.Logger = l
}

// Load replaces the snapshot with the repository contents.
func (s *Store) Load(ctx context.Context) error {
	points, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rate series from %s: %w", s.repo.Name(), err)
	}
	if len(points) == 0 {
		return fmt.Errorf("failed to load rate series from %s: %w", s.repo.Name(), ErrNoData)
	}

	s.mu.Lock()
	s.points = nil
	s.upsertLocked(points)
	n := len(s.points)
	s.mu.Unlock()

	s.Logger.Infof("loaded %d rate points from %s", n, s.repo.Name())
	return nil
}

// Save persists the snapshot, newest first.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	out := make([]domain.RatePoint, len(s.points))
	for i, p := range s.points {
		out[len(out)-1-i] = p
	}
	s.mu.RUnlock()

	if err := s.repo.Save(ctx, out); err != nil {
		return fmt.Errorf("failed to save rate series to %s: %w", s.repo.Name(), err)
	}
	s.Logger.Infof("saved %d rate points to %s", len(out), s.repo.Name())
	return nil
}

// Points returns a copy of the series in ascending date order.
func (s *Store) Points() []domain.RatePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.RatePoint(nil), s.points...)
}

// Len is the number of stored days.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Rate returns the stored rate for a calendar day.
func (s *Store) Rate(day time.Time) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.indexLocked(dateutil.Day(day))
	if !ok {
		return decimal.Zero, false
	}
	return s.points[i].Rate, true
}

// Latest returns the newest stored point.
func (s *Store) Latest() (domain.RatePoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.points) == 0 {
		return domain.RatePoint{}, false
	}
	return s.points[len(s.points)-1], true
}

// Upsert merges points by calendar day, last write wins. It reports how many
// days were added and how many existing days changed rate.
func (s *Store) Upsert(points []domain.RatePoint) (added, updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLocked(points)
}

func (s *Store) upsertLocked(points []domain.RatePoint) (added, updated int) {
	for _, p := range points {
		p.Date = dateutil.Day(p.Date)
		i, ok := s.indexLocked(p.Date)
		if ok {
			if !s.points[i].Rate.Equal(p.Rate) {
				s.points[i].Rate = p.Rate
				updated++
			}
			continue
		}
		s.points = append(s.points, domain.RatePoint{})
		copy(s.points[i+1:], s.points[i:])
		s.points[i] = p
		added++
	}
	return added, updated
}

// indexLocked finds day in the series, or the position it would be inserted at.
func (s *Store) indexLocked(day time.Time) (int, bool) {
	i := sort.Search(len(s.points), func(i int) bool { return !s.points[i].Date.Before(day) })
	return i, i < len(s.points) && s.points[i].Date.Equal(day)
}

// AverageRate is the mean of stored rates in [start, end] inclusive, rounded to
// two decimals. With no point in range it returns the earliest rate when start
// precedes the series, the latest rate when end follows it, and otherwise the
// default. Only the default is flagged as a fallback.
func (s *Store) AverageRate(start, end time.Time) domain.RateLookup {
	start, end = dateutil.Day(start), dateutil.Day(end)
	lookup := domain.RateLookup{Start: start, End: end}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.points) == 0 {
		s.Logger.Warnf("rate series is empty; using default rate %s%%", DefaultRatePercent)
		lookup.Rate, lookup.Fallback, lookup.Source = DefaultRatePercent, true, "default"
		return lookup
	}

	sum := decimal.Zero
	for _, p := range s.points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		sum = sum.Add(p.Rate)
		lookup.Points++
	}
	if lookup.Points > 0 {
		lookup.Rate = sum.Div(decimal.NewFromInt(int64(lookup.Points))).Round(2)
		lookup.Source = "range"
		return lookup
	}

	earliest, latest := s.points[0], s.points[len(s.points)-1]
	switch {
	case start.Before(earliest.Date):
		lookup.Rate, lookup.Source = earliest.Rate, "earliest"
	case end.After(latest.Date):
		lookup.Rate, lookup.Source = latest.Rate, "latest"
	default:
		lookup.Rate, lookup.Fallback, lookup.Source = DefaultRatePercent, true, "default"
	}
	s.Logger.Warnf("no rates between %s and %s; using %s rate %s%%",
		start.Format(dateutil.ISO), end.Format(dateutil.ISO), lookup.Source, lookup.Rate)
	return lookup
}

package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// anchorSearchDays is how far either side of an anchor date a substitute is sought.
const anchorSearchDays = 5

// Window is an inclusive date range requested from the source.
type Window struct {
	Start time.Time
	End   time.Time
}

// RefreshReport describes what a refresh changed.
type RefreshReport struct {
	Windows        []Window
	Fetched        int
	Added          int
	Updated        int
	AnchorsFilled  []time.Time
	CarriedForward bool
	Saved          bool
}

// Changed reports whether the stored series was modified.
func (r RefreshReport) Changed() bool { return r.Added > 0 || r.Updated > 0 }

// Refresher pulls recent observations into a store. Refreshes must not run
// concurrently against the same repository.
type Refresher struct {
	Store   *Store
	Fetcher Fetcher
	Logger  calculation.Logger
	Now     func() time.Time
}

// NewRefresher creates a refresher.
func NewRefresher(store *Store, fetcher Fetcher) *Refresher {
	return &Refresher{Store: store, Fetcher: fetcher, Logger: calculation.NopLogger{}, Now: time.Now}
}

// Windows lists the date ranges to request for today.
func Windows(today time.Time) []Window {
	today = dateutil.Day(today)
	windows := []Window{
		{today, today},
		{today.AddDate(0, 0, -7), today},
		{today.AddDate(0, 0, -30), today},
	}
	if today.Day() <= 5 {
		prevEnd := dateutil.PreviousMonthEnd(today)
		windows = append(windows, Window{prevEnd.AddDate(0, 0, -5), prevEnd})
	}
	if d := today.Day(); d >= 14 && d <= 16 {
		mid := dateutil.Date(today.Year(), today.Month(), 15)
		windows = append(windows, Window{mid.AddDate(0, 0, -2), mid.AddDate(0, 0, 2)})
	}
	return windows
}

// Anchors lists the dates that should always carry a rate.
func Anchors(today time.Time) []time.Time {
	today = dateutil.Day(today)
	anchors := []time.Time{
		dateutil.Date(today.Year(), today.Month(), 1),
		dateutil.Date(today.Year(), today.Month(), 15),
	}
	if today.Day() <= 15 {
		anchors = append(anchors, dateutil.PreviousMonthEnd(today))
	}
	return append(anchors, today)
}

// Refresh fetches every window, merges the results, fills anchor dates from
// neighbours and saves when anything changed. Fetch failures are logged and
// skipped. A missing series is treated as empty.
func (r *Refresher) Refresh(ctx context.Context) (RefreshReport, error) {
	today := dateutil.Day(r.Now())
	report := RefreshReport{Windows: Windows(today)}

	if r.Store.Len() == 0 {
		if err := r.Store.Load(ctx); err != nil {
			r.Logger.Warnf("starting from an empty rate series: %v", err)
		}
	}

	fetched := make(map[time.Time]decimal.Decimal)
	for _, w := range report.Windows {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("refresh cancelled: %w", err)
		}
		got := r.Fetcher.Fetch(ctx, w.Start, w.End)
		r.Logger.Infof("window %s to %s: %d rates", w.Start.Format(dateutil.ISO), w.End.Format(dateutil.ISO), len(got))
		for day, rate := range got {
			fetched[dateutil.Day(day)] = rate
		}
	}
	report.Fetched = len(fetched)

	var incoming []domain.RatePoint
	if len(fetched) > 0 {
		for day, rate := range fetched {
			incoming = append(incoming, domain.RatePoint{Date: day, Rate: rate})
		}
		added, updated := r.Store.Upsert(incoming)
		report.Added, report.Updated = added, updated

		for _, anchor := range Anchors(today) {
			if anchor.After(today) {
				continue
			}
			if _, ok := r.Store.Rate(anchor); ok {
				continue
			}
			if rate, from, ok := r.nearest(anchor); ok {
				r.Store.Upsert([]domain.RatePoint{{Date: anchor, Rate: rate}})
				report.Added++
				report.AnchorsFilled = append(report.AnchorsFilled, anchor)
				r.Logger.Infof("filled %s with %s%% from %s", anchor.Format(dateutil.ISO), rate, from.Format(dateutil.ISO))
			}
		}
	} else if latest, ok := r.Store.Latest(); !ok {
		r.Logger.Warnf("no rates fetched and the series is empty")
	} else if latest.Date.Before(today) {
		r.Logger.Warnf("no rates fetched; carrying %s%% from %s forward to %s",
			latest.Rate, latest.Date.Format(dateutil.ISO), today.Format(dateutil.ISO))
		r.Store.Upsert([]domain.RatePoint{{Date: today, Rate: latest.Rate}})
		report.Added++
		report.CarriedForward = true
	}

	if !report.Changed() {
		return report, nil
	}
	if err := r.Store.Save(ctx); err != nil {
		return report, err
	}
	report.Saved = true
	return report, nil
}

// nearest searches 1..5 days before then after target for a stored rate.
func (r *Refresher) nearest(target time.Time) (decimal.Decimal, time.Time, bool) {
	for offset := 1; offset <= anchorSearchDays; offset++ {
		for _, day := range []time.Time{target.AddDate(0, 0, -offset), target.AddDate(0, 0, offset)} {
			if rate, ok := r.Store.Rate(day); ok {
				return rate, day, true
			}
		}
	}
	return decimal.Zero, time.Time{}, false
}

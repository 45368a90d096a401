package calculation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	defaultWorkingDays   = 252
	defaultRetirementAge = 65
	defaultClientName    = "Client"
)

var (
	defaultHoursPerDay  = decimal.NewFromInt(8)
	defaultHoursPerWeek = decimal.NewFromInt(40)
	vacationPayFactor   = decimal.RequireFromString("1.04")
)

// resolvedCase is a CaseInput after parsing and defaulting.
type resolvedCase struct {
	clientName      string
	jurisdiction    domain.Jurisdiction
	income          domain.IncomeProfile
	past            domain.BenefitAmounts
	annual          domain.BenefitAmounts
	eiStart         time.Time
	lossDate        time.Time
	startDate       time.Time
	missedAmount    decimal.Decimal
	missedUnit      domain.TimeUnit
	pjiRate         *decimal.Decimal
	returnStatus    domain.ReturnStatus
	endDate         time.Time
	birthDate       time.Time
	retirementAge   int
	discountRate    decimal.Decimal
	calculateFuture bool
	notes           []domain.Note
}

func (r *resolvedCase) note(code, format string, args ...any) {
	r.notes = append(r.notes, domain.Note{Code: code, Message: fmt.Sprintf(format, args...)})
}

// resolveCase parses free-form input. Only an unknown jurisdiction is an error;
// every other malformed field falls back to a documented default.
func resolveCase(in domain.CaseInput, today time.Time) (*resolvedCase, error) {
	j, err := domain.ParseJurisdiction(in.Province)
	if err != nil {
		return nil, err
	}

	r := &resolvedCase{jurisdiction: j, clientName: strings.TrimSpace(in.ClientName)}
	if r.clientName == "" {
		r.clientName = defaultClientName
	}

	r.income = resolveIncome(in)

	r.past = domain.BenefitAmounts{
		EI:       money.Parse(in.EIBenefitsToDate),
		SectionB: money.Parse(in.SectionBToDate),
		LTD:      money.Parse(in.LTDBenefitsToDate),
		CPPD:     money.Parse(in.CPPDBenefitsToDate),
		Other:    money.Parse(in.OtherBenefitsToDate),
	}
	r.annual = domain.BenefitAmounts{
		EI:       money.Parse(in.EIBenefitsAnnual),
		SectionB: money.Parse(in.SectionBAnnual),
		LTD:      money.Parse(in.LTDBenefitsAnnual),
		CPPD:     money.Parse(in.CPPDBenefitsAnnual),
		Other:    money.Parse(in.OtherBenefitsAnnual),
	}

	r.lossDate = r.date(in.LossDate, dateutil.AddDays(today, -365), domain.NoteDefaultLossDate, "loss date")
	r.startDate = r.date(in.StartDate, today, domain.NoteDefaultStartDate, "start date")
	switch t, ok := dateutil.Parse(in.EIStartDate); {
	case ok:
		r.eiStart = t
	case r.annual.EI.GreaterThan(decimal.Zero):
		r.eiStart = r.date(in.EIStartDate, r.lossDate, domain.NoteDefaultEIStartDate, "EI start date")
	default:
		r.eiStart = r.lossDate
	}

	r.missedAmount = money.Parse(in.MissedTime)
	unit, ok := domain.ParseTimeUnit(in.MissedTimeUnit)
	if !ok {
		r.note(domain.NoteDefaultTimeUnit, "missed time unit %q not recognised; using days", in.MissedTimeUnit)
	}
	r.missedUnit = unit

	if rate, ok := money.TryParse(in.PJIRate); ok {
		if UsableRatePercent(rate) {
			r.pjiRate = &rate
		} else {
			r.note(domain.NoteDefaultPJIRate, "PJI rate %q not usable; using the rate series", in.PJIRate)
		}
	}

	r.returnStatus = domain.ReturningToWork
	if status := strings.ToLower(strings.TrimSpace(in.ReturnStatus)); status != "" && !strings.Contains(status, "return") {
		r.returnStatus = domain.TotalDisability
	}

	if r.returnStatus == domain.ReturningToWork {
		r.endDate = r.date(in.EndDate, dateutil.AddDays(r.startDate, 365), domain.NoteDefaultEndDate, "end date")
	} else {
		r.birthDate = r.date(in.BirthDate, dateutil.AddYears(r.startDate, -40), domain.NoteDefaultBirthDate, "birthdate")
		r.retirementAge = defaultRetirementAge
		if age, err := strconv.Atoi(strings.TrimSpace(in.RetirementAge)); err == nil && age > 0 {
			r.retirementAge = age
		} else {
			r.note(domain.NoteDefaultRetirementAge, "retirement age %q not usable; assuming %d", in.RetirementAge, defaultRetirementAge)
		}
	}

	switch rate, ok := money.TryParse(in.DiscountRate); {
	case ok && UsableRatePercent(rate):
		r.discountRate = rate.Div(hundred)
	case ok:
		r.discountRate = DefaultDiscountRateFor(j)
		r.note(domain.NoteDefaultDiscountRate, "discount rate %q not usable; using the %s default of %s%%",
			in.DiscountRate, j.DisplayName(), r.discountRate.Mul(hundred).StringFixed(1))
	default:
		r.discountRate = DefaultDiscountRateFor(j)
		r.note(domain.NoteDefaultDiscountRate, "no discount rate given; using the %s default of %s%%",
			j.DisplayName(), r.discountRate.Mul(hundred).StringFixed(1))
	}

	r.calculateFuture = parseFlag(in.CalculateFuture, true)
	return r, nil
}

func resolveIncome(in domain.CaseInput) domain.IncomeProfile {
	p := domain.IncomeProfile{
		WorkingDaysPerYear: defaultWorkingDays,
		HoursPerDay:         defaultHoursPerDay,
		HoursPerWeek:        defaultHoursPerWeek,
	}
	if wd, err := strconv.Atoi(strings.TrimSpace(in.WorkingDays)); err == nil && wd > 0 {
		p.WorkingDaysPerYear = wd
	}
	if n, err := strconv.Atoi(strings.TrimSpace(in.Dependents)); err == nil && n > 0 {
		p.DependentCount = n
	}

	if strings.EqualFold(strings.TrimSpace(in.EmploymentType), "hourly") {
		p.IsHourly = true
		p.IncludeVacationPay = parseFlag(in.IncludeVacationPay, false)
		p.HourlyRate = money.Parse(in.HourlyRate)
		if hpw, ok := money.TryParse(in.HoursPerWeek); ok && hpw.GreaterThan(decimal.Zero) {
			p.HoursPerWeek = hpw
		}
		p.HoursPerDay = p.HoursPerWeek.Div(daysPerWeek)
		p.GrossAnnualIncome = p.HourlyRate.Mul(p.HoursPerWeek).Mul(weeksPerYear)
		if p.IncludeVacationPay {
			p.GrossAnnualIncome = p.GrossAnnualIncome.Mul(vacationPayFactor)
		}
		return p
	}

	p.GrossAnnualIncome = money.Parse(in.Salary)
	if hpd, ok := money.TryParse(in.HoursPerDay); ok && hpd.GreaterThan(decimal.Zero) {
		p.HoursPerDay = hpd
	}
	return p
}

// date parses s, substituting fallback and recording a note when s is empty or malformed.
func (r *resolvedCase) date(s string, fallback time.Time, code, label string) time.Time {
	if t, ok := dateutil.Parse(s); ok {
		return t
	}
	if strings.TrimSpace(s) == "" {
		r.note(code, "no %s given; using %s", label, fallback.Format(dateutil.ISO))
	} else {
		r.note(code, "%s %q not recognised; using %s", label, s, fallback.Format(dateutil.ISO))
	}
	return fallback
}

func parseFlag(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "on", "1":
		return true
	case "no", "n", "false", "off", "0":
		return false
	}
	return def
}

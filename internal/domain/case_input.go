package domain

// CaseInput is a damages request as captured from a form or case file.
// Every field is free text; parsing and defaulting happen in the calculation engine.
type CaseInput struct {
	ClientName         string `yaml:"client_name" json:"client_name"`
	Province           string `yaml:"province" json:"province"`
	EmploymentType     string `yaml:"employment_type" json:"employment_type"`
	Salary             string `yaml:"salary" json:"salary"`
	HourlyRate         string `yaml:"hourly_rate" json:"hourly_rate"`
	HoursPerWeek       string `yaml:"hours_per_week" json:"hours_per_week"`
	HoursPerDay        string `yaml:"hours_per_day" json:"hours_per_day"`
	WorkingDays        string `yaml:"working_days" json:"working_days"`
	IncludeVacationPay string `yaml:"include_vacation_pay" json:"include_vacation_pay"`
	Dependents         string `yaml:"dependents" json:"dependents"`

	EIBenefitsToDate    string `yaml:"ei_benefits_to_date" json:"ei_benefits_to_date"`
	SectionBToDate      string `yaml:"section_b_to_date" json:"section_b_to_date"`
	LTDBenefitsToDate   string `yaml:"ltd_benefits_to_date" json:"ltd_benefits_to_date"`
	CPPDBenefitsToDate  string `yaml:"cppd_benefits_to_date" json:"cppd_benefits_to_date"`
	OtherBenefitsToDate string `yaml:"other_benefits_to_date" json:"other_benefits_to_date"`

	EIBenefitsAnnual    string `yaml:"ei_benefits_annual" json:"ei_benefits_annual"`
	SectionBAnnual      string `yaml:"section_b_annual" json:"section_b_annual"`
	LTDBenefitsAnnual   string `yaml:"ltd_benefits_annual" json:"ltd_benefits_annual"`
	CPPDBenefitsAnnual  string `yaml:"cppd_benefits_annual" json:"cppd_benefits_annual"`
	OtherBenefitsAnnual string `yaml:"other_benefits_annual" json:"other_benefits_annual"`
	EIStartDate         string `yaml:"ei_benefits_start_date" json:"ei_benefits_start_date"`

	LossDate        string `yaml:"loss_date" json:"loss_date"`
	StartDate       string `yaml:"start_date" json:"start_date"`
	MissedTime      string `yaml:"missed_time" json:"missed_time"`
	MissedTimeUnit  string `yaml:"missed_time_unit" json:"missed_time_unit"`
	PJIRate         string `yaml:"pji_rate" json:"pji_rate"`
	ReturnStatus    string `yaml:"return_status" json:"return_status"`
	EndDate         string `yaml:"end_date" json:"end_date"`
	BirthDate       string `yaml:"birthdate" json:"birthdate"`
	RetirementAge   string `yaml:"retirement_age" json:"retirement_age"`
	DiscountRate    string `yaml:"discount_rate" json:"discount_rate"`
	CalculateFuture string `yaml:"calculate_future" json:"calculate_future"`
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Jurisdiction identifies a supported province. Values are lowercase names.
type Jurisdiction string

const (
	NovaScotia         Jurisdiction = "nova scotia"
	Newfoundland       Jurisdiction = "newfoundland"
	NewBrunswick       Jurisdiction = "new brunswick"
	PrinceEdwardIsland Jurisdiction = "prince edward island"
)

// Jurisdictions lists every supported province in display order.
var Jurisdictions = []Jurisdiction{NovaScotia, Newfoundland, NewBrunswick, PrinceEdwardIsland}

// ErrUnknownJurisdiction is matched by errors.Is for any unsupported province.
var ErrUnknownJurisdiction = errors.New("unknown jurisdiction")

// UnknownJurisdictionError reports the value that failed to resolve.
type UnknownJurisdictionError struct {
	Value string
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("unknown jurisdiction %q (supported: nova scotia, newfoundland, new brunswick, prince edward island)", e.Value)
}

func (e *UnknownJurisdictionError) Unwrap() error { return ErrUnknownJurisdiction }

var jurisdictionAliases = map[string]Jurisdiction{
	"ns":                        NovaScotia,
	"nl":                        Newfoundland,
	"nf":                        Newfoundland,
	"newfoundland and labrador": Newfoundland,
	"nb":                        NewBrunswick,
	"pe":                        PrinceEdwardIsland,
	"pei":                       PrinceEdwardIsland,
}

// ParseJurisdiction resolves a case-insensitive province name or abbreviation.
func ParseJurisdiction(s string) (Jurisdiction, error) {
	n := strings.ToLower(strings.Join(strings.Fields(s), " "))
	for _, j := range Jurisdictions {
		if string(j) == n {
			return j, nil
		}
	}
	if j, ok := jurisdictionAliases[n]; ok {
		return j, nil
	}
	return "", &UnknownJurisdictionError{Value: s}
}

// DisplayName returns the title-cased province name.
func (j Jurisdiction) DisplayName() string {
	switch j {
	case NovaScotia:
		return "Nova Scotia"
	case Newfoundland:
		return "Newfoundland"
	case NewBrunswick:
		return "New Brunswick"
	case PrinceEdwardIsland:
		return "Prince Edward Island"
	}
	return string(j)
}

// Valid reports whether j is one of the supported provinces.
func (j Jurisdiction) Valid() bool {
	for _, s := range Jurisdictions {
		if s == j {
			return true
		}
	}
	return false
}

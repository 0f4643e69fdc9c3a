package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/networth-projector/pkg/dateutil"
)

// Symbolic tokens accepted in place of literal dates and ages. They are bound
// to concrete values by the engine before the first simulated period.
const (
	TokenFirstDate      = "first_date"
	TokenRetirement     = "retirement"
	TokenRetirementDate = "retirement_date"
	TokenEndDate        = "end_date"
	TokenRetirementAge  = "retirement_age"
)

var dateTokens = map[string]bool{
	TokenFirstDate:      true,
	TokenRetirement:     true,
	TokenRetirementDate: true,
	TokenEndDate:        true,
}

// Date is a calendar date that reads and writes as YYYY-MM-DD.
type Date time.Time

// NewDate wraps a time as a Date.
func NewDate(t time.Time) Date { return Date(t) }

// Time returns the underlying time.
func (d Date) Time() time.Time { return time.Time(d) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return time.Time(d).Format(dateutil.DateLayout)
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*d = Date{}
		return nil
	}
	t, err := dateutil.ParseDate(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// DateRef is either a literal date or a symbolic token awaiting binding.
type DateRef struct {
	Token string
	Date  time.Time
}

// LiteralDate returns a resolved reference.
func LiteralDate(t time.Time) DateRef { return DateRef{Date: t} }

// SymbolicDate returns an unresolved reference to a token.
func SymbolicDate(token string) DateRef { return DateRef{Token: token} }

// ParseDateRef accepts an ISO date or one of the known date tokens.
func ParseDateRef(s string) (DateRef, error) {
	s = strings.TrimSpace(s)
	if dateTokens[s] {
		return SymbolicDate(s), nil
	}
	t, err := dateutil.ParseDate(s)
	if err != nil {
		return DateRef{}, fmt.Errorf("%q is neither a YYYY-MM-DD date nor one of first_date, retirement, retirement_date, end_date", s)
	}
	return LiteralDate(t), nil
}

// IsResolved reports whether the reference holds a concrete date.
func (r DateRef) IsResolved() bool { return r.Token == "" && !r.Date.IsZero() }

// IsZero reports whether the reference was never set.
func (r DateRef) IsZero() bool { return r.Token == "" && r.Date.IsZero() }

// Resolve replaces a token with its bound date; unknown tokens are left as-is.
func (r DateRef) Resolve(dates map[string]time.Time) DateRef {
	if r.Token == "" {
		return r
	}
	if t, ok := dates[r.Token]; ok {
		return LiteralDate(t)
	}
	return r
}

func (r DateRef) String() string {
	if r.Token != "" {
		return r.Token
	}
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format(dateutil.DateLayout)
}

func (r DateRef) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *DateRef) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*r = DateRef{}
		return nil
	}
	ref, err := ParseDateRef(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// AgeRef is either a literal age in years or the retirement_age token.
type AgeRef struct {
	Token string
	Age   int
}

// LiteralAge returns a resolved age reference.
func LiteralAge(age int) AgeRef { return AgeRef{Age: age} }

// IsResolved reports whether the reference holds a concrete age.
func (r AgeRef) IsResolved() bool { return r.Token == "" }

// Resolve replaces a token with its bound age; unknown tokens are left as-is.
func (r AgeRef) Resolve(ages map[string]int) AgeRef {
	if r.Token == "" {
		return r
	}
	if a, ok := ages[r.Token]; ok {
		return LiteralAge(a)
	}
	return r
}

func (r AgeRef) String() string {
	if r.Token != "" {
		return r.Token
	}
	return strconv.Itoa(r.Age)
}

func (r AgeRef) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *AgeRef) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == TokenRetirementAge {
		*r = AgeRef{Token: s}
		return nil
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is neither an age nor %s", s, TokenRetirementAge)
	}
	if age < 0 || age > 120 {
		return fmt.Errorf("age %d out of range", age)
	}
	*r = LiteralAge(age)
	return nil
}

// Bindings maps symbolic tokens to concrete dates and ages.
type Bindings struct {
	Dates map[string]time.Time
	Ages  map[string]int
}

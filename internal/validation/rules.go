package validation

import (
	"regexp"
	"strings"
	"time"
)

// Violations maps a failure flag to true. A nil Violations means valid.
type Violations map[string]bool

const (
	FlagInvalidCPF    = "invalidCpf"
	FlagMinLength     = "minLength"
	FlagUppercase     = "uppercase"
	FlagLowercase     = "lowercase"
	FlagNumber        = "number"
	FlagSymbol        = "symbol"
	FlagInvalidFormat = "invalidFormat"
	FlagInvalidDate   = "invalidDate"
	FlagFutureDate    = "futureDate"
	FlagUnderAge      = "underAge"
)

const (
	passwordMinLength = 8
	passwordSymbols   = `!@#$%^&*(),.?":{}|<>`
	adultAge          = 18
	dateLayout        = "02/01/2006"
)

var (
	datePattern  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
)

// now is replaced in tests.
var now = time.Now

// CPF checks a Brazilian taxpayer number. Formatting characters are ignored;
// anything that does not leave exactly 11 digits is invalid.
func CPF(value string) Violations {
	digits := make([]int, 0, 11)
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	invalid := Violations{FlagInvalidCPF: true}

	if len(digits) != 11 {
		return invalid
	}
	same := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			same = false
			break
		}
	}
	if same {
		return invalid
	}

	if checkDigit(digits[:9]) != digits[9] || checkDigit(digits[:10]) != digits[10] {
		return invalid
	}
	return nil
}

// checkDigit weights the digits n+1..2 and maps a remainder of 10 to 0.
func checkDigit(digits []int) int {
	sum := 0
	weight := len(digits) + 1
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	rest := sum * 10 % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// Password reports every strength rule value breaks. Empty input is valid;
// presence is checked separately.
func Password(value string) Violations {
	if value == "" {
		return nil
	}

	v := Violations{}
	if len([]rune(value)) < passwordMinLength {
		v[FlagMinLength] = true
	}

	var upper, lower, digit, symbol bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper {
		v[FlagUppercase] = true
	}
	if !lower {
		v[FlagLowercase] = true
	}
	if !digit {
		v[FlagNumber] = true
	}
	if !symbol {
		v[FlagSymbol] = true
	}

	if len(v) == 0 {
		return nil
	}
	return v
}

// BirthDate validates a dd/MM/yyyy date of birth against the current day.
func BirthDate(value string) Violations {
	return BirthDateAt(value, now())
}

// BirthDateAt validates value as of today. Someone born exactly 18 years
// before today is an adult.
func BirthDateAt(value string, today time.Time) Violations {
	date, flag := parseDate(value)
	if flag != "" {
		return Violations{flag: true}
	}

	day := truncateDay(today)
	if date.After(day) {
		return Violations{FlagFutureDate: true}
	}
	cutoff := time.Date(day.Year()-adultAge, day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(cutoff) {
		return Violations{FlagUnderAge: true}
	}
	return nil
}

// CalendarDate checks that value is a real dd/MM/yyyy date.
func CalendarDate(value string) Violations {
	if _, flag := parseDate(value); flag != "" {
		return Violations{flag: true}
	}
	return nil
}

// Gmail reports whether value is a gmail.com address, the only provider the
// user service accepts.
func Gmail(value string) bool {
	return gmailPattern.MatchString(value)
}

func parseDate(value string) (time.Time, string) {
	if len(strings.TrimSpace(value)) != 10 || !datePattern.MatchString(value) {
		return time.Time{}, FlagInvalidFormat
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, FlagInvalidDate
	}
	return date, ""
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

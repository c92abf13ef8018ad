package quantity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

var (
	// ErrNoDigits is returned by Parse when the amount contains no digit.
	ErrNoDigits = errors.New("no digits in resource amount")

	// ErrInvalid is returned when an amount cannot be represented as a
	// non-negative integer.
	ErrInvalid = errors.New("invalid resource amount")
)

// Mode selects how amounts are normalized.
type Mode string

const (
	ModeDigits Mode = "digits"
	ModeUnits  Mode = "units"
	ModeMilli  Mode = "milli"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeDigits, ModeUnits, ModeMilli}

// Parser converts a raw amount into an integer.
type Parser func(raw string) (int64, error)

// ParseMode validates a mode name. The empty string selects ModeDigits.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeDigits, nil
	}
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown quantity mode %q (want one of digits, units, milli)", s)
}

// ForMode returns the parser for m. Unknown modes fall back to Parse.
func ForMode(m Mode) Parser {
	switch m {
	case ModeUnits:
		return ParseUnits
	case ModeMilli:
		return ParseMilli
	default:
		return Parse
	}
}

// Parse strips every character that is not a decimal digit and parses the
// remainder. Unit suffixes and decimal points are discarded, so "0.5" becomes 5.
func Parse(raw string) (int64, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoDigits, raw)
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, raw, err)
	}
	return v, nil
}

// ParseUnits parses raw as a Kubernetes quantity rounded up to whole units.
func ParseUnits(raw string) (int64, error) {
	q, err := resource.ParseQuantity(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, raw, err)
	}
	if q.Sign() < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalid, raw)
	}
	return q.Value(), nil
}

// ParseMilli parses raw as a Kubernetes quantity expressed in milli-units.
func ParseMilli(raw string) (int64, error) {
	q, err := resource.ParseQuantity(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, raw, err)
	}
	if q.Sign() < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalid, raw)
	}
	return q.MilliValue(), nil
}

package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a currency-agnostic amount stored as an integer number of cents.
// On the wire it is a decimal number with at most two fractional digits.
type Money int64

// MaxAmount is the largest magnitude ParseMoney accepts: one billion units.
const MaxAmount Money = 1_000_000_000_00

// ParseMoney parses a decimal string such as "3.5", "3.50" or "12" without
// going through floating point.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if hasFrac && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var units int64
	if whole != "" {
		var err error
		units, err = strconv.ParseInt(whole, 10, 64)
		if err != nil || units > int64(MaxAmount)/100 {
			return 0, fmt.Errorf("amount %q is out of range", s)
		}
	}

	var cents int64
	switch len(frac) {
	case 1:
		cents = int64(frac[0]-'0') * 10
	case 2:
		cents = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	}

	total := units*100 + cents
	if total > int64(MaxAmount) {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	if neg {
		total = -total
	}
	return Money(total), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// Add returns m+o, clamped to the int64 range instead of wrapping.
func (m Money) Add(o Money) Money {
	sum := m + o
	switch {
	case o > 0 && sum < m:
		return Money(math.MaxInt64)
	case o < 0 && sum > m:
		return Money(math.MinInt64)
	}
	return sum
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a JSON number, e.g. 3.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid amount %s", raw)
		}
		raw = unquoted
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

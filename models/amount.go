package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"coachdesk-backend/apperr"
)

// Amount is an integer number of currency units. Operator-entered values
// arrive as strings with symbols and separators ("¥6,000"), so it accepts
// both JSON numbers and strings.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			return apperr.Validationf("amount must be non-negative")
		}
		*a = Amount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return apperr.Validationf("amount must be a number or a numeric string")
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAmount strips every non-digit character and parses the rest, so
// "¥6,000" and "6000円" both become 6000.
func ParseAmount(s string) (Amount, error) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, apperr.Validationf("amount %q contains no digits", s)
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("amount %q is not a valid integer", s)
	}
	return Amount(n), nil
}

func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// Formatted inserts thousands separators for receipts and email bodies.
func (a Amount) Formatted() string {
	s := a.String()
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Package book implements the contact data model: validated phone and
// birthday fields, the Record type, and the AddressBook collection with its
// upcoming-birthday report.
package book

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFormat reports a field value that does not match the required
// shape (phone digits, DD-MM-YYYY date, empty name).
var ErrInvalidFormat = errors.New("invalid format")

// ErrDuplicateBirthday reports an attempt to set a birthday on a record
// that already has one.
var ErrDuplicateBirthday = errors.New("contact already has a birthday")

// birthdayLayout is the only accepted birthday format.
// time.Parse alone is too lenient about zero padding, so the shape is
// checked digit-by-digit before parsing.
const birthdayLayout = "02-01-2006"

// Phone is a validated phone number: exactly 10 ASCII digits.
type Phone string

// NewPhone validates raw as a phone number. No normalization is applied:
// separators, spaces and country prefixes are rejected.
func NewPhone(raw string) (Phone, error) {
	if len(raw) != 10 {
		return "", fmt.Errorf("phone %q: must be exactly 10 digits: %w", raw, ErrInvalidFormat)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", fmt.Errorf("phone %q: must be exactly 10 digits: %w", raw, ErrInvalidFormat)
		}
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// Birthday is a validated calendar date, stored at midnight UTC.
type Birthday struct {
	t time.Time
}

// NewBirthday validates raw as a zero-padded DD-MM-YYYY date denoting a
// real calendar day.
func NewBirthday(raw string) (Birthday, error) {
	if !birthdayShape(raw) {
		return Birthday{}, fmt.Errorf("birthday %q: use DD-MM-YYYY: %w", raw, ErrInvalidFormat)
	}
	t, err := time.ParseInLocation(birthdayLayout, raw, time.UTC)
	if err != nil {
		return Birthday{}, fmt.Errorf("birthday %q: use DD-MM-YYYY: %w", raw, ErrInvalidFormat)
	}
	return Birthday{t: t}, nil
}

// birthdayShape checks the literal DD-MM-YYYY pattern: two digits, dash,
// two digits, dash, four digits.
func birthdayShape(raw string) bool {
	if len(raw) != 10 || raw[2] != '-' || raw[5] != '-' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4, 6, 7, 8, 9} {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// Date returns the underlying calendar date.
func (b Birthday) Date() time.Time { return b.t }

func (b Birthday) String() string { return b.t.Format(birthdayLayout) }

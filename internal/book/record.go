package book

import (
	"fmt"
	"strings"
)

// Record is a single contact: a name, an ordered list of phones (duplicates
// allowed), and at most one birthday. Records are owned by their AddressBook
// and are not safe for concurrent mutation.
type Record struct {
	name     string
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with the given name and no phones or birthday.
// The name is stored verbatim; only the empty string is rejected.
func NewRecord(name string) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("contact name must not be empty: %w", ErrInvalidFormat)
	}
	return &Record{name: name}, nil
}

// Name returns the contact name, the record's identity within its book.
func (r *Record) Name() string { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates raw and appends it. Duplicates are not suppressed.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes every phone equal to value. Removing a phone that is
// not present is a no-op.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if string(p) != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces every phone equal to old with the validated new value.
// The new value is validated first; on failure the record is unchanged.
// An absent old value is a no-op.
func (r *Record) EditPhone(old, new string) error {
	p, err := NewPhone(new)
	if err != nil {
		return err
	}
	for i := range r.phones {
		if string(r.phones[i]) == old {
			r.phones[i] = p
		}
	}
	return nil
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.phones {
		if string(p) == value {
			return p, true
		}
	}
	return "", false
}

// AddBirthday validates raw and sets it as the contact's birthday.
// A record holds at most one birthday; setting a second fails.
func (r *Record) AddBirthday(raw string) error {
	if r.birthday != nil {
		return fmt.Errorf("%s: %w", r.name, ErrDuplicateBirthday)
	}
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// Birthday returns the contact's birthday, if set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// String renders the one-line summary used by the "all" listing.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name)
	sb.WriteString(", phones: ")
	for i, p := range r.phones {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(string(p))
	}
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

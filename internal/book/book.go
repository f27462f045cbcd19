package book

import "time"

// AddressBook is a collection of records keyed by contact name. Iteration
// follows insertion order; overwriting an existing name keeps its position.
// Not safe for concurrent use; callers must serialize access.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts rec under its name. An existing record of the same name
// is overwritten in place (last write wins, position preserved).
func (b *AddressBook) AddRecord(rec *Record) {
	if _, ok := b.records[rec.name]; !ok {
		b.order = append(b.order, rec.name)
	}
	b.records[rec.name] = rec
}

// Delete removes the record for name. Deleting an absent name is a no-op.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Find returns the record for name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	rec, ok := b.records[name]
	return rec, ok
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Names returns the contact names in insertion order.
func (b *AddressBook) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Records returns the records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// UpcomingBirthdays reports which contacts have a birthday within the seven
// days starting at today, grouped by weekday name. Occurrences falling on a
// Saturday or Sunday are reported under "Monday" with the offset advanced by
// a single day; an occurrence the shift pushes past the window is dropped.
// Names within a day keep the book's insertion order. Contacts without a
// birthday are skipped. Only today's date components are used; pass a
// date-only value for deterministic results.
func (b *AddressBook) UpcomingBirthdays(today time.Time) map[string][]string {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	byDay := make(map[string][]string)
	for _, rec := range b.Records() {
		bd, ok := rec.Birthday()
		if !ok {
			continue
		}

		// This year's occurrence; already-passed dates roll to next year.
		// A Feb 29 birthday normalizes to Mar 1 in non-leap years.
		date := bd.Date()
		occurrence := time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		if occurrence.Before(today) {
			occurrence = time.Date(today.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		}

		delta := int(occurrence.Sub(today).Hours() / 24)
		if delta < 0 {
			continue
		}

		day := today.AddDate(0, 0, delta).Weekday()
		name := day.String()
		if day == time.Saturday || day == time.Sunday {
			delta++
			name = time.Monday.String()
		}

		if delta < 7 {
			byDay[name] = append(byDay[name], rec.Name())
		}
	}
	return byDay
}

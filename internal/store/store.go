// Package store persists an address book to a JSON document and
// reconstructs it. The document holds a single "records" object mapping
// contact name to phone list and optional birthday; record order in the
// document follows the book's insertion order, and loading preserves it.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"contactbook/internal/book"
)

// ErrLoadFailed reports a persisted book that could not be read: the file is
// missing or its contents are not a valid book document. Callers typically
// keep their prior state when they see it.
var ErrLoadFailed = errors.New("could not load address book")

// recordDoc is the persisted form of a single record. The contact name is
// the enclosing object key, not a field.
type recordDoc struct {
	Phones   []string `json:"phones"`
	Birthday *string  `json:"birthday"`
}

// Save writes the book to path, replacing any prior contents. The document
// is written to a temporary file in the same directory and renamed into
// place, so a crash mid-write cannot truncate an existing book.
func Save(b *book.AddressBook, path string) error {
	data, err := encode(b)
	if err != nil {
		return fmt.Errorf("failed to encode address book: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Load reads the document at path and reconstructs the book. A missing file
// or undecodable document yields ErrLoadFailed; a stored phone or birthday
// that no longer validates aborts the load with the field's own error. On
// any failure no book is returned, so the caller's prior state is intact.
func Load(path string) (*book.AddressBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrLoadFailed)
	}
	defer f.Close()

	b, err := decode(f)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// encode renders the book in insertion order. encoding/json marshals maps
// with sorted keys, so the records object is assembled by hand.
func encode(b *book.AddressBook) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"records":{`)
	for i, rec := range b.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rec.Name())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		doc := recordDoc{Phones: make([]string, 0, len(rec.Phones()))}
		for _, p := range rec.Phones() {
			doc.Phones = append(doc.Phones, string(p))
		}
		if bd, ok := rec.Birthday(); ok {
			s := bd.String()
			doc.Birthday = &s
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// decode walks the document with a token decoder so records are restored in
// file order. Phones and birthdays go back through their validating
// constructors; a value that fails validation aborts the whole load.
func decode(r io.Reader) (*book.AddressBook, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	b := book.New()
	seen := false
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if key != "records" {
			// Skip unknown top-level values.
			var ignore json.RawMessage
			if err := dec.Decode(&ignore); err != nil {
				return nil, fmt.Errorf("bad document: %v: %w", err, ErrLoadFailed)
			}
			continue
		}
		seen = true
		if err := decodeRecords(dec, b); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if !seen {
		return nil, fmt.Errorf(`document has no "records" object: %w`, ErrLoadFailed)
	}
	return b, nil
}

func decodeRecords(dec *json.Decoder, b *book.AddressBook) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return err
		}
		var doc recordDoc
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("record %q: %v: %w", name, err, ErrLoadFailed)
		}

		rec, err := book.NewRecord(name)
		if err != nil {
			return err
		}
		for _, phone := range doc.Phones {
			if err := rec.AddPhone(phone); err != nil {
				return err
			}
		}
		if doc.Birthday != nil {
			if err := rec.AddBirthday(*doc.Birthday); err != nil {
				return err
			}
		}
		b.AddRecord(rec)
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("bad document: %v: %w", err, ErrLoadFailed)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("bad document: expected %q, got %v: %w", want, tok, ErrLoadFailed)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("bad document: %v: %w", err, ErrLoadFailed)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("bad document: expected string key, got %v: %w", tok, ErrLoadFailed)
	}
	return s, nil
}

package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"contactbook/internal/book"
)

func buildBook(t *testing.T) *book.AddressBook {
	t.Helper()
	b := book.New()

	ann, err := book.NewRecord("Ann")
	require.NoError(t, err)
	require.NoError(t, ann.AddPhone("1234567890"))
	require.NoError(t, ann.AddPhone("5555555555"))
	require.NoError(t, ann.AddBirthday("15-06-1990"))
	b.AddRecord(ann)

	bob, err := book.NewRecord("Bob")
	require.NoError(t, err)
	require.NoError(t, bob.AddPhone("9876543210"))
	b.AddRecord(bob)

	empty, err := book.NewRecord("Carol")
	require.NoError(t, err)
	b.AddRecord(empty)

	return b
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	orig := buildBook(t)

	require.NoError(t, Save(orig, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(orig.Names(), loaded.Names()); diff != "" {
		t.Errorf("names mismatch after round trip (-want +got):\n%s", diff)
	}
	for _, name := range orig.Names() {
		want, _ := orig.Find(name)
		got, ok := loaded.Find(name)
		if !ok {
			t.Fatalf("record %q missing after round trip", name)
		}
		if diff := cmp.Diff(want.Phones(), got.Phones()); diff != "" {
			t.Errorf("record %q phones mismatch (-want +got):\n%s", name, diff)
		}
		wantBD, wantOK := want.Birthday()
		gotBD, gotOK := got.Birthday()
		if wantOK != gotOK || (wantOK && wantBD.String() != gotBD.String()) {
			t.Errorf("record %q birthday mismatch: %v/%v vs %v/%v",
				name, wantBD, wantOK, gotBD, gotOK)
		}
	}
}

func TestSaveLoad_EmptyBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, Save(book.New(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Len())
}

func TestSave_DocumentSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, Save(buildBook(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]struct {
		Phones   []string `json:"phones"`
		Birthday *string  `json:"birthday"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc, 1, "document must have exactly the records key")

	records := doc["records"]
	require.Len(t, records, 3)
	require.Equal(t, []string{"1234567890", "5555555555"}, records["Ann"].Phones)
	require.NotNil(t, records["Ann"].Birthday)
	require.Equal(t, "15-06-1990", *records["Ann"].Birthday)
	require.Nil(t, records["Bob"].Birthday, "absent birthday must be null")
	require.NotNil(t, records["Carol"].Phones, "empty phone list must be [], not null")
	require.Empty(t, records["Carol"].Phones)
}

func TestSave_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, Save(buildBook(t), path))

	b := book.New()
	rec, err := book.NewRecord("Dave")
	require.NoError(t, err)
	require.NoError(t, rec.AddPhone("1112223334"))
	b.AddRecord(rec)
	require.NoError(t, Save(b, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Dave"}, loaded.Names())
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "book.json")
	require.NoError(t, Save(book.New(), path))

	_, err := Load(path)
	require.NoError(t, err)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(buildBook(t), filepath.Join(dir, "book.json")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "book.json", entries[0].Name())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrLoadFailed) {
		t.Fatalf("Load of missing file = %v, want ErrLoadFailed", err)
	}
}

func TestLoad_CorruptDocument(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"truncated", `{"records": {"Ann": {"phones": [`},
		{"array top level", `[1, 2, 3]`},
		{"missing records key", `{"contacts": {}}`},
		{"records not an object", `{"records": 42}`},
		{"empty file", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0644))

			_, err := Load(path)
			if !errors.Is(err, ErrLoadFailed) {
				t.Fatalf("Load = %v, want ErrLoadFailed", err)
			}
		})
	}
}

func TestLoad_InvalidStoredPhoneAbortsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	doc := `{"records": {"Ann": {"phones": ["123"], "birthday": null}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := Load(path)
	if !errors.Is(err, book.ErrInvalidFormat) {
		t.Fatalf("Load = %v, want ErrInvalidFormat", err)
	}
	if errors.Is(err, ErrLoadFailed) {
		t.Error("field validation failure should be distinct from ErrLoadFailed")
	}
}

func TestLoad_InvalidStoredBirthdayAbortsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	doc := `{"records": {"Ann": {"phones": [], "birthday": "1990-06-15"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := Load(path)
	if !errors.Is(err, book.ErrInvalidFormat) {
		t.Fatalf("Load = %v, want ErrInvalidFormat", err)
	}
}

func TestLoad_PreservesDocumentOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	doc := `{"records": {
		"Zed": {"phones": [], "birthday": null},
		"Ann": {"phones": [], "birthday": null},
		"Mid": {"phones": [], "birthday": null}
	}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"Zed", "Ann", "Mid"}, loaded.Names()); diff != "" {
		t.Errorf("document order not preserved (-want +got):\n%s", diff)
	}
}

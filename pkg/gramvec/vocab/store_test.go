package vocab

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	store := Store{}

	m := Build([]string{"aa", "ab"}, []string{"ba"})
	if err := store.Save(path, m); err != nil {
		t.Fatalf("Failed to save mapping: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Failed to load mapping: %v", err)
	}
	if !reflect.DeepEqual(loaded, m) {
		t.Errorf("Expected %v, got %v", m, loaded)
	}
}

func TestStoreSavesSortedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	store := Store{}

	if err := store.Save(path, Mapping{"zz": 1, "aa": 0}); err != nil {
		t.Fatalf("Failed to save mapping: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read mapping file: %v", err)
	}
	want := "{\n  \"aa\": 0,\n  \"zz\": 1\n}"
	if string(data) != want {
		t.Errorf("Expected sorted indented JSON %q, got %q", want, string(data))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := Store{}

	_, err := store.Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrMappingNotFound) {
		t.Errorf("Expected ErrMappingNotFound, got %v", err)
	}
}

func TestStoreLoadRejectsCorruptIndices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	if err := os.WriteFile(path, []byte(`{"aa": 0, "ab": 0}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := (Store{}).Load(path); err == nil {
		t.Error("Expected error for non-dense indices")
	}
}

func TestStoreLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	if err := os.WriteFile(path, []byte(`{"aa": `), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := (Store{}).Load(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

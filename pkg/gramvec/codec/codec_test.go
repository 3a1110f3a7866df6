package codec

import (
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		in := map[string]int{"ab": 0, "ba": 1, "日本": 2}

		data, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("%s: failed to marshal: %v", c.Name(), err)
		}

		out := map[string]int{}
		if err := c.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s: failed to unmarshal: %v", c.Name(), err)
		}
		if len(out) != len(in) {
			t.Errorf("%s: expected %d entries, got %d", c.Name(), len(in), len(out))
		}
		for k, v := range in {
			if out[k] != v {
				t.Errorf("%s: expected %s=%d, got %d", c.Name(), k, v, out[k])
			}
		}
	}
}

func TestMarshalIndentSortsKeys(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		data, err := c.MarshalIndent(map[string]int{"zz": 1, "aa": 0}, "", "  ")
		if err != nil {
			t.Fatalf("%s: failed to marshal: %v", c.Name(), err)
		}
		want := "{\n  \"aa\": 0,\n  \"zz\": 1\n}"
		if string(data) != want {
			t.Errorf("%s: expected %q, got %q", c.Name(), want, string(data))
		}
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("go-json")
	if !ok {
		t.Fatal("Expected go-json codec to be registered")
	}
	if c.Name() != "go-json" {
		t.Errorf("Expected name go-json, got %s", c.Name())
	}

	if _, ok := ByName("msgpack"); ok {
		t.Error("Expected unknown codec name to miss")
	}
}

func TestDefault(t *testing.T) {
	if Default.Name() != "go-json" {
		t.Errorf("Expected default codec go-json, got %s", Default.Name())
	}
}

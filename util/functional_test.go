package util

import (
	"testing"
)

func TestMappedSlice(t *testing.T) {
	entries := []Entry[string, string]{{Key: "A", Value: "1"}, {Key: "B", Value: "x y"}}
	m := MappedSlice(entries, func(e Entry[string, string]) string { return "-D" + e.Key + "=" + e.Value })

	expected := []string{"-DA=1", "-DB=x y"}
	if len(m) != len(expected) {
		t.Fatal("unexpected result size")
	}
	for i := range m {
		if m[i] != expected[i] {
			t.Fatalf("unexpected value at index %d", i)
		}
	}
}

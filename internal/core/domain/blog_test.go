package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and drops empties", []string{"a", " b ", "", "c"}, []string{"a", "b", "c"}},
		{"whitespace only is dropped", []string{"  ", "\t", "go"}, []string{"go"}},
		{"nil input", nil, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeTags(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeTags(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeTags_CommaInput(t *testing.T) {
	got := NormalizeTags(strings.Split("a, b ,,c", ","))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNormalizeTags_Cap(t *testing.T) {
	in := make([]string, 0, 15)
	for _, r := range "abcdefghijklmno" {
		in = append(in, string(r))
	}
	got := NormalizeTags(in)
	if len(got) != MaxTags {
		t.Fatalf("expected %d tags, got %d", MaxTags, len(got))
	}
	if got[0] != "a" || got[MaxTags-1] != "j" {
		t.Fatalf("expected first %d tags kept in order, got %v", MaxTags, got)
	}
}

func TestBlogStatus_Valid(t *testing.T) {
	if !StatusDraft.Valid() || !StatusPublished.Valid() {
		t.Fatal("expected draft and published to be valid")
	}
	if BlogStatus("archived").Valid() {
		t.Fatal("unknown status reported valid")
	}
}

package normalize

import (
	"reflect"
	"strings"
	"testing"
)

func TestLine_FoldsTypography(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"“service” of the claim form", `"service" of the claim form`},
		{"rule 6.14 – deemed service", "rule 6.14 - deemed service"},
		{"the court’s permission", "the court's permission"},
		{"dis\u00adclosure", "disclosure"},
		{"\ufeffPart 81", "Part 81"},
		{"  spaced \t out	text  ", "spaced out text"},
		{"plain ascii stays", "plain ascii stays"},
	}

	for _, tt := range tests {
		if got := Line(tt.in); got != tt.want {
			t.Errorf("Line(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLines_DropsEmptyAndSplits(t *testing.T) {
	raw := "Part 31\r\n\r\n  Disclosure and inspection  \n\nof documents\r"
	want := []string{"Part 31", "Disclosure and inspection", "of documents"}

	got := Lines(raw)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}

func TestLines_Idempotent(t *testing.T) {
	inputs := []string{
		"The fee is £24 per hour.\n“quoted” line — with dash\n\n  padded  ",
		"",
		"single line",
		"control\achar and soft\u00adhyphen",
	}

	for _, raw := range inputs {
		once := Lines(raw)
		twice := Lines(strings.Join(once, "\n"))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Lines not idempotent for %q: first %v, second %v", raw, once, twice)
		}
	}
}

func TestKey_PunctuationSlack(t *testing.T) {
	a := Key("Service must occur within 14 days.")
	b := Key("service must occur, within 14 days")
	if a != b {
		t.Errorf("expected matching keys, got %q vs %q", a, b)
	}

	if Key("within 14 days") == Key("within 28 days") {
		t.Error("different figures should not share a key")
	}
}

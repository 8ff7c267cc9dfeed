package cmd

import "testing"

func TestParseDelimiter(t *testing.T) {
	cases := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{",", ',', false},
		{";", ';', false},
		{"tab", '\t', false},
		{"\t", '\t', false},
		{"|", 0, true},
		{",,", 0, true},
	}
	for _, c := range cases {
		got, err := parseDelimiter(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseDelimiter(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDelimiter(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseDelimiter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValueOrDefault(t *testing.T) {
	if got := valueOrDefault("", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := valueOrDefault("set", "fallback"); got != "set" {
		t.Fatalf("expected set, got %q", got)
	}
}

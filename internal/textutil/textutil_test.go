package textutil

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}
	for _, tc := range cases {
		if got := NormalizeWhitespace(tc.in); got != tc.want {
			t.Fatalf("NormalizeWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" Merhaba , dünya .", "Merhaba, dünya."},
		{"wait  ...  what ?", "wait... what?"},
		{"no change needed.", "no change needed."},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeText(tc.in); got != tc.want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "a", "b"); got != "a" {
		t.Fatalf("expected a, got %s", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

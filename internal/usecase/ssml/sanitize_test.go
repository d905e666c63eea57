package ssml

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello [PH 0:01] world", "Hello  world"},
		{"no brackets here", "no brackets here"},
		{"[PH 0:01:06]", ""},
		{"a [x] b [y] c", "a  b  c"},
		{"nested [a [b] c]", "nested  c]"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"Hello [PH 0:01] world",
		"[a][b]text[c]",
		"unbalanced [ bracket",
		"plain",
	}
	for _, in := range inputs {
		once := SanitizeText(in)
		if twice := SanitizeText(once); twice != once {
			t.Errorf("SanitizeText not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

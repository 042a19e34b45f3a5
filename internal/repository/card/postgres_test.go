package card

import "testing"

func TestLikeEscaper(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"%", `\%`},
		{"_", `\_`},
		{`ab\%`, `ab\\\%`},
	}
	for _, tc := range cases {
		if got := likeEscaper.Replace(tc.in); got != tc.want {
			t.Errorf("escape %q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

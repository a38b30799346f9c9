package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Brand Story: Coffee Roasters": "brand-story-coffee-roasters",
		"  Tom & Jerry's / Reel  ":     "tom-and-jerrys-reel",
		"---":                          "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

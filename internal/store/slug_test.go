package store

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation collapsed", "Go!! Rocks... 2", "go-rocks-2"},
		{"leading and trailing junk", "  --Wireless Mouse--  ", "wireless-mouse"},
		{"already clean", "usb-c-hub", "usb-c-hub"},
		{"unicode letters kept", "Café au Lait", "café-au-lait"},
		{"digits", "4K Monitor 27", "4k-monitor-27"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slugify(tc.in); got != tc.want {
				t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

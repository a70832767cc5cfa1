package keys

import "testing"

func TestKeyFromName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Basic Attack", "basic_attack"},
		{"  Healing Light  ", "healing_light"},
		{"fireball", "fireball"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := KeyFromName(c.in); got != c.want {
			t.Errorf("KeyFromName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

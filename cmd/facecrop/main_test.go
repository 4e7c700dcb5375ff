package main

import "testing"

func TestConfigFlagValue(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"separate value", []string{"-in", "a.jpg", "-config", "cfg.json"}, "cfg.json"},
		{"equals form", []string{"-config=cfg.json", "-in", "a.jpg"}, "cfg.json"},
		{"double dash", []string{"--config", "cfg.json"}, "cfg.json"},
		{"double dash equals", []string{"--config=cfg.json"}, "cfg.json"},
		{"absent", []string{"-in", "a.jpg", "-zoom", "1.2"}, ""},
		{"no args", nil, ""},
		{"trailing flag without value", []string{"-config"}, ""},
	}

	for _, tc := range cases {
		if got := configFlagValue(tc.args); got != tc.want {
			t.Errorf("%s: configFlagValue(%v) = %q, want %q", tc.name, tc.args, got, tc.want)
		}
	}
}

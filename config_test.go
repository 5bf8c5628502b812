package trellis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(`
debug: true
key_repeat_delay: 0.25
blink_period: 0.75
`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.Debug = true
	want.KeyRepeatDelay = 0.25
	want.BlinkPeriod = 0.75
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "debug: [", "parse config"},
		{"type", "line_spacing: wide", "parse config"},
		{"zero delay", "key_repeat_delay: 0", "key_repeat_delay must be positive"},
		{"negative interval", "key_repeat_interval: -1", "key_repeat_interval must be positive"},
		{"zero spacing", "line_spacing: 0", "line_spacing must be positive"},
		{"zero blink", "blink_period: 0", "blink_period must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stampede.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Engine.URL != "http://localhost:8089" {
		t.Errorf("Engine.URL = %s, want http://localhost:8089", cfg.Engine.URL)
	}
	if cfg.Exporter.Listen != ":9646" {
		t.Errorf("Exporter.Listen = %s, want :9646", cfg.Exporter.Listen)
	}
	if cfg.Target.Timeout != 30*time.Second {
		t.Errorf("Target.Timeout = %v, want 30s", cfg.Target.Timeout)
	}

	for _, name := range []string{"DEFAULT", "BASIC", "STRESS", "ENDURANCE"} {
		if _, ok := cfg.Profiles[name]; !ok {
			t.Errorf("built-in profile %s missing", name)
		}
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
target:
  base_url: https://api.example.com
  timeout: 10s
engine:
  url: http://engine:8089
exporter:
  listen: ":9900"
  poll_interval: 2s
header_sets:
  common:
    Content-Type: application/json
    Accept: application/json
  api_key:
    x-api-key: test-key-1
profiles:
  smoke:
    - type: spike
      users: 2
    - type: steady
      users: 2
      duration: 30s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Target.BaseURL != "https://api.example.com" {
		t.Errorf("Target.BaseURL = %s", cfg.Target.BaseURL)
	}
	if cfg.Target.Timeout != 10*time.Second {
		t.Errorf("Target.Timeout = %v, want 10s", cfg.Target.Timeout)
	}
	if cfg.Exporter.PollInterval != 2*time.Second {
		t.Errorf("Exporter.PollInterval = %v, want 2s", cfg.Exporter.PollInterval)
	}

	headers, err := cfg.HeaderSet("api_key")
	if err != nil {
		t.Fatalf("HeaderSet() error = %v", err)
	}
	if headers["x-api-key"] != "test-key-1" {
		t.Errorf("header set api_key = %v", headers)
	}

	profile, err := cfg.Profile("smoke")
	if err != nil {
		t.Fatalf("Profile(smoke) error = %v", err)
	}
	if profile.TotalDuration() != 31*time.Second {
		t.Errorf("smoke TotalDuration = %v, want 31s", profile.TotalDuration())
	}
}

func TestLoad_RampUpTargetKey(t *testing.T) {
	path := writeConfig(t, `
profiles:
  climb:
    - type: ramp-up
      target: 40
      duration: 20s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	profile, err := cfg.Profile("climb")
	if err != nil {
		t.Fatalf("Profile(climb) error = %v", err)
	}
	users, err := profile.UsersAt(20 * time.Second)
	if err != nil {
		t.Fatalf("UsersAt() error = %v", err)
	}
	if users != 40 {
		t.Errorf("UsersAt(20s) = %d, want 40", users)
	}
}

func TestPhaseConfig_RampTarget(t *testing.T) {
	tests := []struct {
		name  string
		phase PhaseConfig
		want  int
	}{
		{"target set", PhaseConfig{Type: "ramp-up", Target: 40}, 40},
		{"users synonym", PhaseConfig{Type: "ramp-up", Users: 25}, 25},
		{"target wins", PhaseConfig{Type: "ramp-up", Target: 40, Users: 25}, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.rampTarget(); got != tt.want {
				t.Errorf("rampTarget() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STAMPEDE_ENGINE_URL", "http://override:8089")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.URL != "http://override:8089" {
		t.Errorf("Engine.URL = %s, want env override", cfg.Engine.URL)
	}
}

func TestLoad_RejectsMalformedProfile(t *testing.T) {
	path := writeConfig(t, `
profiles:
  broken:
    - type: ramp-up
      users: 10
      duration: 0s
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with zero-duration ramp returned nil error")
	}

	path = writeConfig(t, `
profiles:
  broken:
    - type: teleport
      users: 10
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with unknown phase type returned nil error")
	}
}

func TestConfig_Profile_CaseInsensitive(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := cfg.Profile("basic"); err != nil {
		t.Errorf("Profile(basic) error = %v", err)
	}
	if _, err := cfg.Profile("nope"); err == nil {
		t.Error("Profile(nope) returned nil error")
	}
}

func TestBuiltinProfiles_AllBuild(t *testing.T) {
	for name, profile := range BuiltinProfiles() {
		if _, err := profile.Build(); err != nil {
			t.Errorf("built-in profile %s failed to build: %v", name, err)
		}
	}
}

func TestProfileConfig_Build_ReferenceShape(t *testing.T) {
	profile, err := ProfileConfig{
		{Type: "spike", Users: 10},
		{Type: "ramp-up", Users: 50, Duration: 30 * time.Second},
		{Type: "steady", Users: 50, Duration: time.Minute},
		{Type: "stress-ramp", Start: 50, End: 100, Duration: 30 * time.Second},
	}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if profile.TotalDuration() != 121*time.Second {
		t.Errorf("TotalDuration = %v, want 121s", profile.TotalDuration())
	}
	users, err := profile.UsersAt(106 * time.Second)
	if err != nil {
		t.Fatalf("UsersAt() error = %v", err)
	}
	if users != 75 {
		t.Errorf("UsersAt(106s) = %d, want 75", users)
	}
}

package config

import (
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Host != ":8080" || cfg.App.CompanyName != "SimpleYM" {
		t.Errorf("unexpected defaults: host %q company %q", cfg.HTTP.Host, cfg.App.CompanyName)
	}
	if cfg.App.TimeZone.String() != "America/New_York" {
		t.Errorf("time zone = %s", cfg.App.TimeZone)
	}
	if !reflect.DeepEqual(cfg.App.Locations, DefaultLocations) {
		t.Errorf("locations = %v", cfg.App.Locations)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.JWTSecret != "s3cret" {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if !cfg.MoveFeed.Listen || cfg.MoveFeed.PollInterval != 0 {
		t.Errorf("move feed = %+v", cfg.MoveFeed)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("LOCATIONS", " FRZ , ,CLR ")
	t.Setenv("TRAILER_ID_MIN_LENGTH", "4")
	t.Setenv("MOVE_FEED_POLL_INTERVAL", "15s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.App.Locations, []string{"FRZ", "CLR"}) {
		t.Errorf("locations = %v", cfg.App.Locations)
	}
	if cfg.App.TrailerIDMinLength != 4 || cfg.MoveFeed.PollInterval != 15*time.Second || cfg.Metrics.Enabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsUnknownZone(t *testing.T) {
	t.Setenv("TIME_ZONE", "Mars/Olympus_Mons")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown time zone")
	}
}

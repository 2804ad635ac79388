package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ResyncSchedule != "0 3 * * *" {
		t.Errorf("ResyncSchedule = %q", cfg.ResyncSchedule)
	}
	if cfg.DBConn == "" || cfg.JWTSecret == "" {
		t.Error("required fields not defaulted")
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_CONN", "host=db port=5432 dbname=ledger")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("RESYNC_SCHEDULE", "30 2 * * *")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DBConn != "host=db port=5432 dbname=ledger" {
		t.Errorf("DBConn = %q", cfg.DBConn)
	}
	if cfg.JWTSecret != "supersecret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.ResyncSchedule != "30 2 * * *" {
		t.Errorf("ResyncSchedule = %q", cfg.ResyncSchedule)
	}
}

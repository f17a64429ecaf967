package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizops.yaml")
	body := `
addr: ":9000"
database:
  url: "postgres://file/db"
  slow_threshold: 500ms
auth:
  admin_secret: from-file
  token_ttl: 2h
documents:
  default_due_days: 45
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://env/db")
	t.Setenv("ADMIN_JWT_SECRET", "")
	t.Setenv("USER_JWT_SECRET", "user-from-env")
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Errorf("DB_URL should override the file, got %q", cfg.Database.URL)
	}
	if cfg.Database.SlowThreshold != 500*time.Millisecond {
		t.Errorf("SlowThreshold = %v", cfg.Database.SlowThreshold)
	}
	if cfg.Auth.AdminSecret != "from-file" || cfg.Auth.UserSecret != "user-from-env" {
		t.Errorf("secrets = %q / %q", cfg.Auth.AdminSecret, cfg.Auth.UserSecret)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Docs.DefaultDueDays != 45 || cfg.Docs.DefaultValidDays != 15 {
		t.Errorf("Docs = %+v", cfg.Docs)
	}
}

func TestApplyEnvPrecedence(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL": "postgres://primary",
		"DB_URL":       "postgres://fallback",
		"PORT":         "3000",
	}
	cfg := Default()
	cfg.applyEnv(func(k string) string { return env[k] })

	if cfg.Database.URL != "postgres://primary" {
		t.Errorf("URL = %q", cfg.Database.URL)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", localDSN},
		{"postgres://u:p@h/db", "postgres://u:p@h/db?sslmode=require&search_path=public"},
		{"postgres://u:p@h/db?sslmode=disable", "postgres://u:p@h/db?sslmode=disable&search_path=public"},
		{"postgres://h/db?search_path=app&sslmode=verify-full", "postgres://h/db?search_path=app&sslmode=verify-full"},
	}
	for _, tt := range tests {
		if got := NormalizeDSN(tt.in); got != tt.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

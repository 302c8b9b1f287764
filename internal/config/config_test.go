package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")

	// Path that does not exist: defaults plus environment only.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT secret = %q", cfg.JWT.Secret)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database host = %q", cfg.Database.Host)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("server port = %q", cfg.Server.Port)
	}
	if cfg.Database.DBName != "tutorium" {
		t.Errorf("default dbname = %q", cfg.Database.DBName)
	}
	if cfg.JWT.AccessTokenExpiration != "1h" {
		t.Errorf("default access token expiration = %q", cfg.JWT.AccessTokenExpiration)
	}
}

func TestLoadConfigFileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "8085"
jwt:
  secret: file-secret
database:
  host: file-host
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DB_HOST", "env-host")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "8085" {
		t.Errorf("server port = %q, want file value", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("JWT secret = %q, want file value", cfg.JWT.Secret)
	}
	if cfg.Database.Host != "env-host" {
		t.Errorf("database host = %q, environment must win over the file", cfg.Database.Host)
	}
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error when JWT secret is absent")
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRATION", "one hour")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for an unparseable duration")
	}
}

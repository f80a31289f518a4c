// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("PROJECT_KEY_SALT", "")
	t.Setenv("SLUG_SALT", "")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("PROJECT_KEY_SALT", "test-salt")
	t.Setenv("SLUG_SALT", "test-slug")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected database type postgres, got %s", cfg.DatabaseType)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-project-salt", "s1", "-slug-salt", "s2", "-base-url", "https://fieldwork.example"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.BaseURL != "https://fieldwork.example" {
		t.Errorf("expected base URL from flag, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no database url", []string{"-project-salt", "s1", "-slug-salt", "s2"}},
		{"no project salt", []string{"-d", "file:test.db", "-slug-salt", "s2"}},
		{"no slug salt", []string{"-d", "file:test.db", "-project-salt", "s1"}},
		{"unknown database type", []string{"-d", "x", "-t", "mysql", "-project-salt", "s1", "-slug-salt", "s2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	setBaseEnv(t)
	// godotenv does not override variables that are already set
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("PROJECT_KEY_SALT")
	os.Unsetenv("SLUG_SALT")

	dir := t.TempDir()
	env := "DATABASE_URL=file:dotenv.db\nPROJECT_KEY_SALT=from-file\nSLUG_SALT=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("PROJECT_KEY_SALT")
		os.Unsetenv("SLUG_SALT")
	})

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "file:dotenv.db" {
		t.Errorf("expected DATABASE_URL from .env, got %q", cfg.DatabaseURL)
	}
	if cfg.ProjectKeySalt != "from-file" {
		t.Errorf("expected PROJECT_KEY_SALT from .env, got %q", cfg.ProjectKeySalt)
	}
}

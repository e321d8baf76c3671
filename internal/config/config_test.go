package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RetentionCount() != DefaultRetention || cfg.WorkerCount() != DefaultWorkers {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SortOrder() != DefaultSort || cfg.ListLimit() != DefaultLimit {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadValues(t *testing.T) {
	path := writeConfig(t, `
db_dir: /var/lib/pathfold
retention: 0
workers: 2
sort: size
limit: 10
verbose: true
exclude:
  - '\.git$'
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseDir() != "/var/lib/pathfold" {
		t.Fatalf("db dir = %q", cfg.DatabaseDir())
	}
	if cfg.RetentionCount() != 0 {
		t.Fatalf("explicit zero retention lost: %d", cfg.RetentionCount())
	}
	if cfg.WorkerCount() != 2 || cfg.SortOrder() != "size" || cfg.ListLimit() != 10 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if !cfg.Verbose || len(cfg.Exclude) != 1 || cfg.Exclude[0] != `\.git$` {
		t.Fatalf("unexpected values: %+v", cfg)
	}
	if cfg.Path() != path {
		t.Fatalf("path = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"workers", "workers: 0\n"},
		{"retention", "retention: -1\n"},
		{"sort", "sort: random\n"},
		{"limit", "limit: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "workers: [1, 2\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

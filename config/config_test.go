package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/padangco/seagreen/dataset"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seagreen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.TopN != 3 || cfg.Source.Kind != "csv" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
sessionTTL: 5m
source:
  kind: xlsx
  workbookPath: data/seagreen.xlsx
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("sessionTTL = %v", cfg.SessionTTL)
	}
	src := cfg.DataSource()
	if src.Kind != dataset.SourceXLSX || src.WorkbookPath != "data/seagreen.xlsx" {
		t.Errorf("source = %+v", src)
	}
	// Untouched keys keep their defaults.
	if cfg.TopN != 3 {
		t.Errorf("topN = %d, want default 3", cfg.TopN)
	}
}

func TestEnvOverYAML(t *testing.T) {
	path := writeFile(t, "addr: \":9090\"\ntopN: 5\n")
	t.Setenv("SEAGREEN_ADDR", ":7070")
	t.Setenv("SEAGREEN_SOURCE_KIND", "sqlite")
	t.Setenv("SEAGREEN_SOURCE_DSN", "file:seagreen.db")
	t.Setenv("SEAGREEN_LANGUAGE", "de")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q, want env value", cfg.Addr)
	}
	if cfg.TopN != 5 {
		t.Errorf("topN = %d, want yaml value 5", cfg.TopN)
	}
	if cfg.Source.Kind != "sqlite" || cfg.Source.DSN != "file:seagreen.db" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.LanguageTag() != language.German {
		t.Errorf("language = %v", cfg.LanguageTag())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad yaml", yaml: "addr: [", wantErr: "parse config"},
		{name: "bad env", env: map[string]string{"SEAGREEN_TOP_N": "three"}, wantErr: "parse env:"},
		{name: "unknown kind", yaml: "source:\n  kind: parquet\n", wantErr: "unknown source kind"},
		{name: "xlsx without workbook", yaml: "source:\n  kind: xlsx\n", wantErr: "workbookPath"},
		{name: "postgres without dsn", yaml: "source:\n  kind: postgres\n", wantErr: "needs dsn"},
		{name: "zero topN", yaml: "topN: 0\n", wantErr: "topN"},
		{name: "zero sweep interval", env: map[string]string{"SEAGREEN_SWEEP_INTERVAL": "0s"}, wantErr: "sweepInterval"},
		{name: "negative sweep interval", yaml: "sweepInterval: -1m\n", wantErr: "sweepInterval"},
		{name: "negative session ttl", yaml: "sessionTTL: -5m\n", wantErr: "sessionTTL"},
		{name: "bad language", yaml: "language: \"!!\"\n", wantErr: "language"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, tt.yaml)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridio.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Gridio.Name != "gridio-fetch" {
		t.Errorf("name = %q", cfg.Gridio.Name)
	}
	if cfg.Source.Esett.BaseURL != "https://api.opendata.esett.com" {
		t.Errorf("esett base url = %q", cfg.Source.Esett.BaseURL)
	}
	if len(cfg.Source.Esett.MBACodes) != 4 {
		t.Errorf("mba codes = %v", cfg.Source.Esett.MBACodes)
	}
	if cfg.Output.PublicRoot != "public/data" || cfg.Output.RawRoot != "src/data/real/raw" {
		t.Errorf("output roots = %q, %q", cfg.Output.PublicRoot, cfg.Output.RawRoot)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
source:
  esett:
    base_url: "http://localhost:8080"
output:
  public_root: "out/public"
  raw_root: "out/raw"
logging:
  level: "debug"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Source.Esett.BaseURL != "http://localhost:8080" {
		t.Errorf("esett base url = %q", cfg.Source.Esett.BaseURL)
	}
	if cfg.Output.PublicRoot != "out/public" || cfg.Output.RawRoot != "out/raw" {
		t.Errorf("output roots = %q, %q", cfg.Output.PublicRoot, cfg.Output.RawRoot)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Source.Svk.AuctionTypeID != 1 {
		t.Errorf("svk auction type = %d", cfg.Source.Svk.AuctionTypeID)
	}
	if cfg.Fetcher.UserAgent != "gridio-fetch/1.0" {
		t.Errorf("user agent = %q", cfg.Fetcher.UserAgent)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "source: [not: a: mapping\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted invalid yaml")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty name", "gridio:\n  name: \"\"\n"},
		{"empty esett base url", "source:\n  esett:\n    base_url: \"\"\n"},
		{"no mba codes", "source:\n  esett:\n    mba_codes: []\n"},
		{"empty output root", "output:\n  public_root: \"\"\n"},
		{"s3 enabled without bucket", "storage:\n  s3:\n    enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig accepted %s", tt.name)
			}
		})
	}
}

func TestLoadConfigAWSEnvOverrides(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")
	t.Setenv("AWS_REGION", "eu-north-1")
	t.Setenv("S3_BUCKET", "env-bucket ")

	path := writeConfigFile(t, `
storage:
  s3:
    enabled: true
    bucket: "file-bucket"
    region: "us-east-1"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.S3.AccessKeyID != "env-key" {
		t.Errorf("access key = %q", cfg.Storage.S3.AccessKeyID)
	}
	if cfg.Storage.S3.SecretAccessKey != "env-secret" {
		t.Errorf("secret key = %q", cfg.Storage.S3.SecretAccessKey)
	}
	if cfg.Storage.S3.Region != "eu-north-1" {
		t.Errorf("region = %q", cfg.Storage.S3.Region)
	}
	if cfg.Storage.S3.Bucket != "env-bucket" {
		t.Errorf("bucket = %q", cfg.Storage.S3.Bucket)
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := validateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServeConfigDefaults(t *testing.T) {
	cfg, err := loadServeConfig("")
	if err != nil {
		t.Fatalf("loadServeConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("default cache backend = %q, want empty (file)", cfg.Cache.Backend)
	}
}

func TestLoadServeConfigFile(t *testing.T) {
	const config = `
addr = ":9090"

[cache]
backend = "redis"

[cache.redis]
addr = "localhost:6379"
db = 2

[archive]
uri = "mongodb://localhost:27017"
database = "layouts"
`
	path := filepath.Join(t.TempDir(), "serve.toml")
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadServeConfig(path)
	if err != nil {
		t.Fatalf("loadServeConfig: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "localhost:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Archive.URI != "mongodb://localhost:27017" || cfg.Archive.Database != "layouts" {
		t.Errorf("archive config = %+v", cfg.Archive)
	}
}

func TestLoadServeConfigMissingFile(t *testing.T) {
	if _, err := loadServeConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestLoadServeConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.toml")
	if err := os.WriteFile(path, []byte("addr = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadServeConfig(path); err == nil {
		t.Error("malformed config should fail")
	}
}

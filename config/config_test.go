package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Recommend.DefaultLimit != 5 || cfg.Recommend.MaxLimit != 50 {
		t.Errorf("Recommend limits = %d/%d, want 5/50", cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
store:
  backend: redis
  redis_addr: "localhost:6379"
recommend:
  default_limit: 8
  exclude_rule: 'item.price >= 500.0'
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Recommend.DefaultLimit != 8 {
		t.Errorf("DefaultLimit = %d, want 8", cfg.Recommend.DefaultLimit)
	}
	// 文件里没出现的字段保持默认值
	if cfg.Recommend.MaxLimit != 50 {
		t.Errorf("MaxLimit = %d, want default 50", cfg.Recommend.MaxLimit)
	}
	if cfg.Catalog.SampleSize != 50 || cfg.Catalog.SampleSeed != 42 {
		t.Errorf("Catalog = %+v, want sample defaults", cfg.Catalog)
	}
	if cfg.Recommend.ExcludeRule != `item.price >= 500.0` {
		t.Errorf("ExcludeRule = %q", cfg.Recommend.ExcludeRule)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Load should fail on missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not-a-map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

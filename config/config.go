// Package config 加载服务配置（YAML）。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 是服务的全量配置。
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Recommend RecommendConfig `yaml:"recommend"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`         // 监听地址，默认 ":8080"
	CORSOrigins []string `yaml:"cors_origins"` // 为空表示放开所有来源
}

type CatalogConfig struct {
	// CSVPath 为空时使用合成样例目录启动（仅演示/开发用途）
	CSVPath    string `yaml:"csv_path"`
	SampleSize int    `yaml:"sample_size"` // 默认 50
	SampleSeed int64  `yaml:"sample_seed"` // 默认 42
}

type StoreConfig struct {
	Backend   string `yaml:"backend"` // memory / redis，默认 memory
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
}

type RecommendConfig struct {
	DefaultLimit     int    `yaml:"default_limit"`      // 个性化/相似查询默认条数，默认 5
	MaxLimit         int    `yaml:"max_limit"`          // 个性化/相似查询上限，默认 50
	DefaultPageSize  int    `yaml:"default_page_size"`  // 热门/类目默认条数，默认 10
	MaxPageSize      int    `yaml:"max_page_size"`      // 热门/类目上限，默认 100
	CandidateK       int    `yaml:"candidate_k"`        // 每种子候选宽度，默认 10
	TrendingCacheTTL int    `yaml:"trending_cache_ttl"` // 热门榜缓存秒数，0 关闭缓存
	ExcludeRule      string `yaml:"exclude_rule"`       // 个性化结果的 CEL 排除规则，空表示不启用
}

// Default 返回全部取默认值的配置。
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Catalog: CatalogConfig{SampleSize: 50, SampleSeed: 42},
		Store:   StoreConfig{Backend: "memory"},
		Recommend: RecommendConfig{
			DefaultLimit:     5,
			MaxLimit:         50,
			DefaultPageSize:  10,
			MaxPageSize:      100,
			CandidateK:       10,
			TrendingCacheTTL: 60,
		},
	}
}

// Load 从 YAML 文件加载配置，未出现的字段保持默认值。
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Catalog.SampleSize <= 0 {
		c.Catalog.SampleSize = d.Catalog.SampleSize
	}
	if c.Catalog.SampleSeed == 0 {
		c.Catalog.SampleSeed = d.Catalog.SampleSeed
	}
	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	r, dr := &c.Recommend, d.Recommend
	if r.DefaultLimit <= 0 {
		r.DefaultLimit = dr.DefaultLimit
	}
	if r.MaxLimit <= 0 {
		r.MaxLimit = dr.MaxLimit
	}
	if r.DefaultPageSize <= 0 {
		r.DefaultPageSize = dr.DefaultPageSize
	}
	if r.MaxPageSize <= 0 {
		r.MaxPageSize = dr.MaxPageSize
	}
	if r.CandidateK <= 0 {
		r.CandidateK = dr.CandidateK
	}
}

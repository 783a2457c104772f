// recod 是推荐服务进程：加载目录 → 构建相似度索引 → 起 HTTP 服务。
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopstream/reco/catalog"
	"github.com/shopstream/reco/config"
	"github.com/shopstream/reco/core"
	"github.com/shopstream/reco/engine"
	"github.com/shopstream/reco/filter"
	"github.com/shopstream/reco/interaction"
	"github.com/shopstream/reco/server"
	"github.com/shopstream/reco/store"
)

const hotKey = "hot:products"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径（留空使用默认配置）")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 目录：有 CSV 用 CSV，没有就用合成样例目录起服务
	var cat *catalog.Catalog
	if cfg.Catalog.CSVPath != "" {
		cat, err = catalog.LoadCSV(cfg.Catalog.CSVPath)
		if err != nil {
			logger.Fatal("load catalog", zap.Error(err))
		}
		logger.Info("catalog loaded", zap.String("path", cfg.Catalog.CSVPath), zap.Int("products", cat.Len()))
	} else {
		cat = catalog.Sample(cfg.Catalog.SampleSize, cfg.Catalog.SampleSeed)
		logger.Warn("no catalog csv configured, using synthetic sample catalog",
			zap.Int("products", cat.Len()))
	}

	// 存储后端：行为日志 + 热门榜缓存
	var kv core.KeyValueStore
	switch cfg.Store.Backend {
	case "redis":
		kv, err = store.NewRedisStore(cfg.Store.RedisAddr, cfg.Store.RedisDB)
		if err != nil {
			logger.Fatal("connect redis", zap.Error(err))
		}
	default:
		kv = store.NewMemoryStore()
	}
	defer kv.Close()

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithCandidateK(cfg.Recommend.CandidateK),
	}
	if cfg.Store.Backend == "redis" {
		// Redis 后端时行为日志共享存储，多实例部署看到同一份历史
		opts = append(opts, engine.WithInteractionLog(&interaction.StoreLog{Store: kv}))
	}
	if cfg.Recommend.ExcludeRule != "" {
		rule, err := filter.NewRule(cfg.Recommend.ExcludeRule)
		if err != nil {
			logger.Fatal("compile exclude rule", zap.Error(err))
		}
		opts = append(opts, engine.WithExcludeRule(rule))
	}

	eng, err := engine.New(ctx, cat, opts...)
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}

	if err := eng.PublishHot(ctx, kv, hotKey); err != nil {
		logger.Warn("publish hot ranking", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(eng, logger, kv, cfg).Handler(),
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

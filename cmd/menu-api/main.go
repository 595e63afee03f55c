// Package main 选单问答 HTTP 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"q-menu-ai-api/internal/application/menu"
	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/infrastructure/cachestore"
	"q-menu-ai-api/internal/infrastructure/corpus"
	"q-menu-ai-api/internal/infrastructure/embedding"
	"q-menu-ai-api/internal/interfaces/http/handler"
	"q-menu-ai-api/internal/interfaces/http/router"
	"q-menu-ai-api/pkg/logger"
	"q-menu-ai-api/pkg/tracer"

	"github.com/joho/godotenv"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting menu-api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 初始化向量缓存存储
	var (
		store  menu.CacheStore
		pinger handler.Pinger
	)
	switch cfg.Cache.Backend {
	case "redis":
		redisStore, err := cachestore.NewRedisStore(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to init redis cache store", err)
		}
		defer func() { _ = redisStore.Close() }()
		store, pinger = redisStore, redisStore
	default:
		fileStore := cachestore.NewFileStore(&cfg.Cache.File)
		store, pinger = fileStore, fileStore
	}

	// 组装引擎与处理器
	source := corpus.NewCSVSource(&cfg.Corpus)
	embedder := embedding.NewClient(&cfg.Embedding)
	engine := menu.NewEngine(embedder, source, store, cfg.Menu.RebuildConcurrency)

	menuHandler := handler.NewMenuHandler(engine, &cfg.Menu)
	healthHandler := handler.NewHealthHandler(source.Path(), pinger)

	r := router.New(cfg, menuHandler, healthHandler)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}

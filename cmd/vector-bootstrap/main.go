// Package main 向量缓存离线重建入口
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"q-menu-ai-api/internal/application/menu"
	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/infrastructure/cachestore"
	"q-menu-ai-api/internal/infrastructure/corpus"
	"q-menu-ai-api/internal/infrastructure/embedding"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting vector cache bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化缓存存储
	var store menu.CacheStore
	switch cfg.Cache.Backend {
	case "redis":
		redisStore, err := cachestore.NewRedisStore(&cfg.Cache.Redis)
		if err != nil {
			log.Fatalf("failed to init redis cache store: %v", err)
		}
		defer func() { _ = redisStore.Close() }()
		store = redisStore
	default:
		store = cachestore.NewFileStore(&cfg.Cache.File)
	}

	// 3. 读取语料
	source := corpus.NewCSVSource(&cfg.Corpus)
	rows, err := source.Rows(ctx)
	if err != nil {
		log.Fatalf("failed to read corpus: %v", err)
	}
	fmt.Printf("Read %d corpus rows from %s\n", len(rows), source.Path())

	// 4. 重建并落盘
	embedder := embedding.NewClient(&cfg.Embedding)
	engine := menu.NewEngine(embedder, source, store, cfg.Menu.RebuildConcurrency)
	if err := engine.Refresh(ctx, rows); err != nil {
		log.Fatalf("failed to rebuild vector cache: %v", err)
	}

	fmt.Printf("Vector cache rebuilt with %d entries (backend: %s)\n", len(rows), cfg.Cache.Backend)
	fmt.Println("Bootstrap completed.")
}

// Package cachestore 提供向量缓存的持久化存储
package cachestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/infrastructure/textenc"
)

// FileStore 单文件向量缓存存储
// 写入采用临时文件加改名，读方不会观察到半写内容
type FileStore struct {
	path     string
	encoding string
}

// NewFileStore 创建文件缓存存储
func NewFileStore(cfg *config.FileCacheConfig) *FileStore {
	return &FileStore{
		path:     cfg.Path,
		encoding: cfg.Encoding,
	}
}

// Read 读取整块缓存内容
func (s *FileStore) Read(ctx context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector cache file %s: %w", s.path, err)
	}
	return textenc.Decode(raw, s.encoding)
}

// Write 整体替换缓存内容
func (s *FileStore) Write(ctx context.Context, data []byte) error {
	encoded, err := textenc.Encode(data, s.encoding)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace vector cache file %s: %w", s.path, err)
	}
	return nil
}

// Ping 检查缓存目录可用
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cache directory unavailable: %w", err)
	}
	return nil
}

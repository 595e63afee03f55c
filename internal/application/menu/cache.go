package menu

import (
	"encoding/json"
	"fmt"
)

// VectorEntry 一条缓存向量，与语料行按位置一一对应
// 字段名与持久化格式保持一致
type VectorEntry struct {
	Question string    `json:"question"`
	Vector   []float64 `json:"vector"`
}

// VectorCache 按语料顺序排列的向量序列
type VectorCache struct {
	Entries []VectorEntry
}

// Len 返回缓存条目数
func (c *VectorCache) Len() int {
	return len(c.Entries)
}

// Dimension 返回向量维度，空缓存为 0
func (c *VectorCache) Dimension() int {
	if len(c.Entries) == 0 {
		return 0
	}
	return len(c.Entries[0].Vector)
}

// Encode 将缓存序列化为持久化格式
func (c *VectorCache) Encode() ([]byte, error) {
	data, err := json.Marshal(c.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vector cache: %w", err)
	}
	return data, nil
}

// ParseVectorCache 反序列化持久化的向量缓存并校验维度一致性
func ParseVectorCache(data []byte) (*VectorCache, error) {
	var entries []VectorEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("malformed vector cache: %w", err)
	}
	cache := &VectorCache{Entries: entries}
	if err := cache.validate(); err != nil {
		return nil, err
	}
	return cache, nil
}

// validate 校验所有向量共享同一维度
func (c *VectorCache) validate() error {
	dim := c.Dimension()
	for i, e := range c.Entries {
		if len(e.Vector) != dim {
			return fmt.Errorf("inconsistent vector dimensionality: entry %d has %d, expected %d", i, len(e.Vector), dim)
		}
	}
	return nil
}

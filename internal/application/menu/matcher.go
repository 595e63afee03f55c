package menu

import (
	"math"

	"q-menu-ai-api/pkg/errors"
)

// Cosine 计算两个等长向量的余弦相似度
// 任一向量范数为零时定义为 0，避免除零
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Match 对缓存中每个向量计算相似度并按基准值筛选
// 结果按缓存下标升序排列；仅当 similarity > threshold 时入选
// threshold 不做区间收敛，越界值只会让筛选变为全空或全收
func Match(input []float64, cache *VectorCache, threshold float64) ([]MatchCandidate, error) {
	if cache.Len() == 0 {
		return nil, nil
	}
	if len(input) != cache.Dimension() {
		return nil, errors.New(errors.CodeDimensionMismatch, "input embedding dimensionality mismatch").
			WithDetail("input and cached vectors must share one length")
	}

	var candidates []MatchCandidate
	for i, entry := range cache.Entries {
		similarity := Cosine(input, entry.Vector)
		if similarity > threshold {
			candidates = append(candidates, MatchCandidate{
				Index:      i,
				Similarity: similarity,
			})
		}
	}
	return candidates, nil
}

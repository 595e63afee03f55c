package menu

import (
	"math/rand"
	"time"
)

// Sample 从语料中不放回地随机抽取 min(count, 行数) 条
// 每次调用使用时间种子，重复调用结果不可复现
func Sample(rows []CorpusRow, count int) []CorpusRow {
	if count <= 0 {
		return nil
	}
	if count > len(rows) {
		count = len(rows)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	picked := make([]CorpusRow, 0, count)
	for _, idx := range rng.Perm(len(rows))[:count] {
		picked = append(picked, rows[idx])
	}
	return picked
}

// Shuffle 对组装后的问题列表做均匀随机置换
func Shuffle(questions []QuestionAnswer) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}

// Package menu 提供语义匹配选单引擎
package menu

import "context"

// CorpusRow 一条参考问题
// prompt key 用于生成向量，display question 展示给用户，
// source label 标识该行所属的数据文件
type CorpusRow struct {
	PromptKey       string
	DisplayQuestion string
	SourceLabel     string
}

// MatchCandidate 通过相似度基准值的语料条目
type MatchCandidate struct {
	// Index 在语料中的位置
	Index int
	// Similarity 余弦相似度 [-1, 1]
	Similarity float64
}

// QuestionAnswer 组装后的输出条目
type QuestionAnswer struct {
	// PromptText 套用模板后的提示文字
	PromptText string
	// DisplayQuestion 展示给用户的问题原文
	DisplayQuestion string
	// Similarity 相似度分数，随机选单条目固定为 1.0
	Similarity float64
}

// MenuResult 一次查询的完整结果
type MenuResult struct {
	// Menu 随机选单 (空输入或无匹配时填充)
	Menu []QuestionAnswer
	// Matches 通过相似度筛选的问题列表
	Matches []QuestionAnswer
	// ErrorMessage 无匹配时附带的提示文字
	ErrorMessage string
}

// Query 一次查询的全部输入，引擎不做默认值代换
type Query struct {
	Input     string
	Refresh   bool
	Count     int
	Threshold float64
}

// Embedder 文字转向量端口
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Source 语料读取端口，引擎在单次请求内将其视为只读
type Source interface {
	Rows(ctx context.Context) ([]CorpusRow, error)
}

// CacheStore 向量缓存的序列化存储端口
// Write 必须整体替换旧内容，读方不应观察到半写状态
type CacheStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

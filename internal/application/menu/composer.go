package menu

import "fmt"

// promptTemplate 提示文字模板
const promptTemplate = "Based on %s data, analyze %s"

// Compose 将语料行与相似度分数组装成输出条目
// candidates 为 nil 时是随机选单路径，所有条目的相似度固定为 1.0；
// 否则行与候选按位置配对 (第 i 行对应第 i 个候选)
func Compose(rows []CorpusRow, candidates []MatchCandidate) []QuestionAnswer {
	questions := make([]QuestionAnswer, 0, len(rows))
	for i, row := range rows {
		similarity := 1.0
		if candidates != nil {
			similarity = candidates[i].Similarity
		}
		questions = append(questions, QuestionAnswer{
			PromptText:      fmt.Sprintf(promptTemplate, row.SourceLabel, row.PromptKey),
			DisplayQuestion: row.DisplayQuestion,
			Similarity:      similarity,
		})
	}
	return questions
}

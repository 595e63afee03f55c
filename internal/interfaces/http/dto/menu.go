package dto

import (
	"q-menu-ai-api/internal/application/menu"
)

// MenuRequest 选单查询请求
// count 与 threshold 缺省时由处理器代入默认值，引擎本身不做默认值代换
type MenuRequest struct {
	Input     string   `json:"input"`
	IsRefresh *bool    `json:"isRefresh"`
	Count     *int     `json:"count"`
	Threshold *float64 `json:"threshold"`
}

// ToQuery 转为引擎查询，缺省字段代入默认值
func (r *MenuRequest) ToQuery(defaultCount int, defaultThreshold float64) menu.Query {
	q := menu.Query{
		Input:     r.Input,
		Count:     defaultCount,
		Threshold: defaultThreshold,
	}
	if r.IsRefresh != nil {
		q.Refresh = *r.IsRefresh
	}
	if r.Count != nil {
		q.Count = *r.Count
	}
	if r.Threshold != nil {
		q.Threshold = *r.Threshold
	}
	return q
}

// QuestionItem 选单问题条目，字段名与既有前台格式保持兼容
type QuestionItem struct {
	GptQ       string  `json:"gpt_q"`
	UserQ      string  `json:"user_q"`
	Similarity float64 `json:"similarity"`
}

// MenuError 选单提示讯息
type MenuError struct {
	Message string `json:"message,omitempty"`
}

// MenuResponse 选单查询响应
type MenuResponse struct {
	Menu     []QuestionItem `json:"menu"`
	Question []QuestionItem `json:"question"`
	Error    *MenuError     `json:"error,omitempty"`
}

// NewMenuResponse 将引擎结果转为响应格式
func NewMenuResponse(result *menu.MenuResult) MenuResponse {
	resp := MenuResponse{
		Menu:     toQuestionItems(result.Menu),
		Question: toQuestionItems(result.Matches),
	}
	if result.ErrorMessage != "" {
		resp.Error = &MenuError{Message: result.ErrorMessage}
	}
	return resp
}

func toQuestionItems(questions []menu.QuestionAnswer) []QuestionItem {
	items := make([]QuestionItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, QuestionItem{
			GptQ:       q.PromptText,
			UserQ:      q.DisplayQuestion,
			Similarity: q.Similarity,
		})
	}
	return items
}

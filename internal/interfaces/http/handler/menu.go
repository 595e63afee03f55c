// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"q-menu-ai-api/internal/application/menu"
	"q-menu-ai-api/internal/config"
	"q-menu-ai-api/internal/interfaces/http/dto"
	"q-menu-ai-api/pkg/errors"
	"q-menu-ai-api/pkg/logger"
)

// MenuHandler 选单处理器
type MenuHandler struct {
	engine *menu.Engine
	cfg    *config.MenuConfig
}

// NewMenuHandler 创建选单处理器
func NewMenuHandler(engine *menu.Engine, cfg *config.MenuConfig) *MenuHandler {
	return &MenuHandler{
		engine: engine,
		cfg:    cfg,
	}
}

// Questions 取得选单问题
// @Summary 取得选单问题
// @Description 空输入返回随机选单，否则按语义相似度筛选近似问题
// @Tags Menu
// @Accept json
// @Produce json
// @Param body body dto.MenuRequest true "选单查询请求"
// @Success 200 {object} dto.Response[dto.MenuResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/menu [post]
func (h *MenuHandler) Questions(c *gin.Context) {
	var req dto.MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	q := req.ToQuery(h.cfg.DefaultCount, h.cfg.DefaultThreshold)
	result, err := h.engine.Questions(c.Request.Context(), q)
	if err != nil {
		appErr := errors.AsAppError(err)
		logger.Error(c.Request.Context(), "menu query failed", err,
			"code", string(appErr.Code))
		dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		})
		return
	}

	dto.Success(c, dto.NewMenuResponse(result))
}

package admin

import (
	"github.com/blindbox-next/internal/blindbox"
	"github.com/blindbox-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ProbabilityRequest 概率配置请求，三档均为必填
type ProbabilityRequest struct {
	Common *int `json:"common" binding:"required"`
	Rare   *int `json:"rare" binding:"required"`
	Secret *int `json:"secret" binding:"required"`
}

// GetProbabilities 获取抽取概率配置
func (h *Handler) GetProbabilities(c *gin.Context) {
	response.Success(c, h.ProbabilityService.Get())
}

// UpdateProbabilities 更新抽取概率配置
func (h *Handler) UpdateProbabilities(c *gin.Context) {
	var req ProbabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.probability_invalid", nil)
		return
	}
	weights, err := h.ProbabilityService.Set(blindbox.Weights{
		Common: *req.Common,
		Rare:   *req.Rare,
		Secret: *req.Secret,
	})
	if err != nil {
		respondMapped(c, err, probabilityErrorRules, "error.probability_update_failed")
		return
	}
	response.Success(c, weights)
}

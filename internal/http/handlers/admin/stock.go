package admin

import (
	handlershared "github.com/blindbox-next/internal/http/handlers/shared"
	"github.com/blindbox-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdjustStockRequest 库存调整请求，amount 可为负数
type AdjustStockRequest struct {
	Rarity string `json:"rarity" binding:"required"`
	Amount *int   `json:"amount" binding:"required"`
}

// AdjustStock 调整商品某档库存（结果不小于 0）
func (h *Handler) AdjustStock(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.InventoryService.AdjustStock(c.Request.Context(), productID, req.Rarity, *req.Amount)
	if err != nil {
		respondMapped(c, err, stockAdjustErrorRules, "error.stock_adjust_failed")
		return
	}
	response.Success(c, product)
}

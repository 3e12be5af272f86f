package public

import (
	"github.com/blindbox-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（含款式、各档库存与总库存）
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.InventoryService.ListProducts(c.Request.Context())
	if err != nil {
		respondReadError(c, err, "error.product_fetch_failed")
		return
	}
	response.Success(c, products)
}

// GetProbabilities 当前抽取概率配置
func (h *Handler) GetProbabilities(c *gin.Context) {
	response.Success(c, h.ProbabilityService.Get())
}

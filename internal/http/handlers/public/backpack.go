package public

import (
	handlershared "github.com/blindbox-next/internal/http/handlers/shared"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/models"
	"github.com/blindbox-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutItemRequest 下单项请求，quantity 缺省为 1
type CheckoutItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CheckoutResponse 下单响应
type CheckoutResponse struct {
	ItemsAdded int `json:"items_added"`
}

// BackpackResponse 背包响应
type BackpackResponse struct {
	Items []models.BackpackItem `json:"items"`
}

// OpenResponse 开盒响应
type OpenResponse struct {
	Rarity string               `json:"rarity"`
	Item   *models.BackpackItem `json:"item"`
}

// Checkout 下单：每盒抽取款式后放入背包
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	added, err := h.BackpackService.Checkout(items)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, CheckoutResponse{ItemsAdded: added})
}

// GetBackpack 背包全部条目
func (h *Handler) GetBackpack(c *gin.Context) {
	items, err := h.BackpackService.ListAll()
	if err != nil {
		respondReadError(c, err, "error.backpack_fetch_failed")
		return
	}
	if items == nil {
		items = []models.BackpackItem{}
	}
	response.Success(c, BackpackResponse{Items: items})
}

// OpenBackpackItem 开盒
func (h *Handler) OpenBackpackItem(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.BackpackService.Open(c.Request.Context(), id)
	if err != nil {
		respondBackpackOpenError(c, err)
		return
	}
	requestLog(c).Debugw("backpack_item_opened_response",
		"backpack_item_id", id,
		"rarity", result.Resolved.String(),
	)
	response.Success(c, OpenResponse{Rarity: result.Resolved.String(), Item: result.Item})
}

package admin

import (
	"strings"

	handlershared "github.com/blindbox-next/internal/http/handlers/shared"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetDrawRecords 开盒抽取记录分页列表
func (h *Handler) GetDrawRecords(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	records, total, err := h.DrawRecordService.List(repository.DrawRecordListFilter{
		Page:           page,
		PageSize:       pageSize,
		ProductID:      handlershared.ParseUintQuery(c, "product_id"),
		ResolvedRarity: strings.ToLower(strings.TrimSpace(c.Query("rarity"))),
	})
	if err != nil {
		respondMapped(c, err, nil, "error.draw_record_fetch_failed")
		return
	}

	response.SuccessWithPage(c, records, response.NewPagination(page, pageSize, total))
}

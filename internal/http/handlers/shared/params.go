package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseUintParam 解析路径中的正整数 ID
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// ParseUintQuery 解析可选的正整数查询参数，缺省或非法时返回 0
func ParseUintQuery(c *gin.Context, name string) uint {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// ParsePagination 解析 page/page_size 查询参数并归一化（默认 20，最大 100）
func ParsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	pageSize, _ := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page_size", "20")))
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

package response

import (
	"net/http"

	"github.com/blindbox-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"status_code"` // 业务状态码
	Msg        string      `json:"msg"`         // 提示消息
	Data       interface{} `json:"data"`        // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 根据总数计算总页数
func NewPagination(page, pageSize int, total int64) Pagination {
	var totalPage int64
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应，data 中带上 request_id 便于排查
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       requestIDData(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Conflict 409响应
func Conflict(c *gin.Context, msg string) {
	Error(c, CodeConflict, msg)
}

// TooManyRequests 429响应
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, CodeTooManyRequests, msg)
}

// Internal 500响应
func Internal(c *gin.Context, msg string) {
	Error(c, CodeInternal, msg)
}

func requestIDData(c *gin.Context) interface{} {
	if c == nil {
		return nil
	}
	value, ok := c.Get(constants.ContextKeyRequestID)
	if !ok {
		return nil
	}
	if id, ok := value.(string); ok && id != "" {
		return gin.H{"request_id": id}
	}
	return nil
}

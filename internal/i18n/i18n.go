package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZhCN    = "zh-CN"
	LocaleEnUS    = "en-US"
	DefaultLocale = LocaleZhCN
)

const localeQueryKey = "lang"

var catalogs = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.not_found":                 "资源不存在",
		"error.internal":                  "服务器内部错误",
		"error.store_unavailable":         "存储服务暂不可用",
		"error.rate_limited":              "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":    "限流服务暂不可用",
		"error.product_not_found":         "商品不存在",
		"error.product_fetch_failed":      "获取商品失败",
		"error.probability_invalid":       "概率配置无效，三档之和必须为 100",
		"error.probability_update_failed": "更新概率配置失败",
		"error.rarity_invalid":            "稀有度无效",
		"error.stock_adjust_failed":       "调整库存失败",
		"error.checkout_items_empty":      "未提供下单商品",
		"error.checkout_quantity_invalid": "购买数量无效",
		"error.checkout_failed":           "下单失败",
		"error.catalog_tier_empty":        "商品款式配置异常",
		"error.backpack_fetch_failed":     "获取背包失败",
		"error.backpack_item_not_found":   "背包条目不存在",
		"error.backpack_item_opened":      "该盲盒已开启",
		"error.backpack_open_failed":      "开盒失败",
		"error.draw_record_fetch_failed":  "获取抽取记录失败",
	},
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.not_found":                 "Resource not found",
		"error.internal":                  "Internal server error",
		"error.store_unavailable":         "Storage is temporarily unavailable",
		"error.rate_limited":              "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter is unavailable",
		"error.product_not_found":         "Product not found",
		"error.product_fetch_failed":      "Failed to fetch products",
		"error.probability_invalid":       "Total must be 100",
		"error.probability_update_failed": "Failed to update probabilities",
		"error.rarity_invalid":            "Invalid rarity",
		"error.stock_adjust_failed":       "Failed to adjust stock",
		"error.checkout_items_empty":      "No items provided",
		"error.checkout_quantity_invalid": "Invalid quantity",
		"error.checkout_failed":           "Checkout failed",
		"error.catalog_tier_empty":        "Product catalog is misconfigured",
		"error.backpack_fetch_failed":     "Failed to fetch backpack",
		"error.backpack_item_not_found":   "Backpack item not found",
		"error.backpack_item_opened":      "Item already opened",
		"error.backpack_open_failed":      "Failed to open item",
		"error.draw_record_fetch_failed":  "Failed to fetch draw records",
	},
}

// NormalizeLocale 归一化语言标识，不支持的语言返回默认语言
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "":
		return DefaultLocale
	case strings.HasPrefix(value, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(value, "en"):
		return LocaleEnUS
	default:
		return DefaultLocale
	}
}

// ResolveLocale 从 ?lang= 或 Accept-Language 解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query(localeQueryKey)); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	return NormalizeLocale(first)
}

// T 翻译消息，缺失时回退默认语言，再回退为 key 本身
func T(locale, key string) string {
	if msg, ok := catalogs[NormalizeLocale(locale)][key]; ok {
		return msg
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译带参数的消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// clampedAddExpr 构建“列加增量且不小于 0”的表达式，兼容 sqlite 与 postgres。
func clampedAddExpr(db *gorm.DB, column string) string {
	return clampedAddExprByDialect(dbDialectName(db), column)
}

func clampedAddExprByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("GREATEST(%s + ?, 0)", column)
	default:
		// sqlite 的多参数 MAX 为标量函数
		return fmt.Sprintf("MAX(%s + ?, 0)", column)
	}
}

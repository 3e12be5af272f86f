package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// JSON 通用 JSON 对象列
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口（sqlite 返回 []byte，postgres 可能返回 string）
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = make(JSON)
		return nil
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}

// Money 金额类型，统一保留 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromFloat 从浮点数创建金额（仅用于种子数据等常量场景）
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// MarshalJSON 输出 2 位小数的字符串，避免前端精度问题
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 兼容字符串与数字两种写法
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

package blindbox

import (
	"errors"
	"strings"
)

// Tier 稀有度等级
type Tier uint8

const (
	// Common 普通款
	Common Tier = iota + 1
	// Rare 稀有款
	Rare
	// Secret 隐藏款
	Secret
)

var (
	ErrTierInvalid = errors.New("blindbox tier invalid")
)

// FallbackOrder 库存回退顺序：从最稀有开始，而不是就近稀有度
var FallbackOrder = [...]Tier{Secret, Rare, Common}

// AllTiers 全部稀有度（普通在前，用于展示和遍历）
var AllTiers = [...]Tier{Common, Rare, Secret}

// String 返回存储与接口使用的字符串
func (t Tier) String() string {
	switch t {
	case Common:
		return "common"
	case Rare:
		return "rare"
	case Secret:
		return "secret"
	default:
		return "unknown"
	}
}

// Valid 判断是否为已定义的稀有度
func (t Tier) Valid() bool {
	switch t {
	case Common, Rare, Secret:
		return true
	default:
		return false
	}
}

// MarshalText 实现 encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrTierInvalid
	}
	return []byte(t.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier 解析稀有度字符串（忽略大小写与首尾空格）
func ParseTier(raw string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "common":
		return Common, nil
	case "rare":
		return Rare, nil
	case "secret":
		return Secret, nil
	default:
		return 0, ErrTierInvalid
	}
}

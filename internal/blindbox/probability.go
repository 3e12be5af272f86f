package blindbox

import (
	"errors"
	"fmt"
)

// WeightTotal 三档权重之和
const WeightTotal = 100

var (
	ErrWeightsInvalid = errors.New("blindbox probability weights invalid")
)

// Weights 稀有度概率权重（百分比整数）
type Weights struct {
	Common int `json:"common"`
	Rare   int `json:"rare"`
	Secret int `json:"secret"`
}

// DefaultWeights 默认概率 60/30/10
func DefaultWeights() Weights {
	return Weights{Common: 60, Rare: 30, Secret: 10}
}

// Validate 校验权重：每档 0~100，且合计必须为 100
func (w Weights) Validate() error {
	for _, tier := range AllTiers {
		value := w.Of(tier)
		if value < 0 || value > WeightTotal {
			return fmt.Errorf("%w: %s weight %d out of range", ErrWeightsInvalid, tier, value)
		}
	}
	if sum := w.Common + w.Rare + w.Secret; sum != WeightTotal {
		return fmt.Errorf("%w: total %d must be %d", ErrWeightsInvalid, sum, WeightTotal)
	}
	return nil
}

// Of 返回指定稀有度的权重
func (w Weights) Of(tier Tier) int {
	switch tier {
	case Common:
		return w.Common
	case Rare:
		return w.Rare
	case Secret:
		return w.Secret
	default:
		return 0
	}
}

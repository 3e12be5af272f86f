package blindbox

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

var (
	ErrEmptyTier = errors.New("blindbox tier has no items")
)

// RandomSource 均匀随机数来源，可注入以便测试复现
type RandomSource interface {
	// Float64 返回 [0,1) 区间的均匀随机数
	Float64() float64
	// IntN 返回 [0,n) 区间的均匀随机整数
	IntN(n int) int
}

// Item 可抽取的收藏品
type Item struct {
	Code string
	Name string
	Tier Tier
}

// Engine 抽取引擎：按权重抽稀有度，再在该稀有度内均匀抽款式
type Engine struct {
	src RandomSource
}

// NewEngine 创建抽取引擎，src 为空时使用全局随机源
func NewEngine(src RandomSource) *Engine {
	if src == nil {
		src = GlobalSource()
	}
	return &Engine{src: src}
}

// RollTier 按权重抽取稀有度
func (e *Engine) RollTier(w Weights) Tier {
	return TierForDraw(e.src.Float64()*WeightTotal, w)
}

// TierForDraw 将 [0,100) 的抽取值映射为稀有度。
// 累计边界从隐藏款开始，且边界值使用 <= 归入更稀有的一档。
func TierForDraw(draw float64, w Weights) Tier {
	if draw <= float64(w.Secret) {
		return Secret
	}
	if draw <= float64(w.Secret+w.Rare) {
		return Rare
	}
	return Common
}

// RollItem 在指定稀有度内均匀抽取款式
func (e *Engine) RollItem(items []Item, tier Tier) (Item, error) {
	pool := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Tier == tier {
			pool = append(pool, item)
		}
	}
	if len(pool) == 0 {
		return Item{}, fmt.Errorf("%w: %s", ErrEmptyTier, tier)
	}
	return pool[e.src.IntN(len(pool))], nil
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// GlobalSource 返回基于 math/rand/v2 顶层函数的随机源（并发安全）
func GlobalSource() RandomSource {
	return globalSource{}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededSource 创建固定种子的随机源，内部加锁，可在并发场景复用
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

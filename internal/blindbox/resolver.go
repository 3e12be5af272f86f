package blindbox

// StockLedger 库存账本：按商品与稀有度做“有库存才扣一件”的原子操作
type StockLedger interface {
	// TakeOne 库存大于 0 时扣减 1 并返回 true；库存耗尽返回 false
	TakeOne(productID uint, tier Tier) (bool, error)
}

// Allocation 开盒时的库存分配结果
type Allocation struct {
	Rolled      Tier
	Resolved    Tier
	Decremented bool
}

// Resolver 将抽中的稀有度与库存对账
type Resolver struct {
	ledger StockLedger
}

// NewResolver 创建库存对账器
func NewResolver(ledger StockLedger) *Resolver {
	return &Resolver{ledger: ledger}
}

// Resolve 优先扣减抽中的稀有度；耗尽时按 FallbackOrder 扣减第一档有库存的稀有度；
// 全部耗尽时降级为普通款且不扣库存，不视为错误。
func (r *Resolver) Resolve(productID uint, rolled Tier) (Allocation, error) {
	taken, err := r.ledger.TakeOne(productID, rolled)
	if err != nil {
		return Allocation{}, err
	}
	if taken {
		return Allocation{Rolled: rolled, Resolved: rolled, Decremented: true}, nil
	}
	for _, tier := range FallbackOrder {
		if tier == rolled {
			continue
		}
		taken, err := r.ledger.TakeOne(productID, tier)
		if err != nil {
			return Allocation{}, err
		}
		if taken {
			return Allocation{Rolled: rolled, Resolved: tier, Decremented: true}, nil
		}
	}
	return Allocation{Rolled: rolled, Resolved: Common, Decremented: false}, nil
}

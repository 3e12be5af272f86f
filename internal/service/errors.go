package service

import (
	"errors"
	"fmt"

	"github.com/blindbox-next/internal/blindbox"
)

var (
	ErrCheckoutItemsEmpty      = errors.New("checkout items empty")
	ErrCheckoutQuantityInvalid = errors.New("checkout quantity invalid")
	ErrProductNotFound         = errors.New("product not found")
	ErrBackpackItemNotFound    = errors.New("backpack item not found")
	ErrBackpackItemOpened      = errors.New("backpack item already opened")
	ErrStoreUnavailable        = errors.New("store unavailable")
)

var domainErrors = []error{
	ErrCheckoutItemsEmpty,
	ErrCheckoutQuantityInvalid,
	ErrProductNotFound,
	ErrBackpackItemNotFound,
	ErrBackpackItemOpened,
	ErrStoreUnavailable,
	blindbox.ErrWeightsInvalid,
	blindbox.ErrTierInvalid,
	blindbox.ErrEmptyTier,
}

// storeError 将存储层错误包装为 ErrStoreUnavailable，业务错误原样返回
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

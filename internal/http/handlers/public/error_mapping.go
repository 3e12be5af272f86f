package public

import (
	"github.com/blindbox-next/internal/blindbox"
	handlershared "github.com/blindbox-next/internal/http/handlers/shared"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedHandlerError

var checkoutErrorRules = []mappedHandlerError{
	{Target: service.ErrCheckoutItemsEmpty, Code: response.CodeBadRequest, Key: "error.checkout_items_empty"},
	{Target: service.ErrCheckoutQuantityInvalid, Code: response.CodeBadRequest, Key: "error.checkout_quantity_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var backpackOpenErrorRules = []mappedHandlerError{
	{Target: service.ErrBackpackItemNotFound, Code: response.CodeNotFound, Key: "error.backpack_item_not_found"},
	{Target: service.ErrBackpackItemOpened, Code: response.CodeConflict, Key: "error.backpack_item_opened"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: blindbox.ErrTierInvalid, Code: response.CodeInternal, Key: "error.catalog_tier_empty", Log: true},
}

func respondCheckoutError(c *gin.Context, err error) {
	rules := handlershared.ConcatMappedHandlerErrors(checkoutErrorRules, handlershared.StoreErrorRules)
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.checkout_failed")
}

func respondBackpackOpenError(c *gin.Context, err error) {
	rules := handlershared.ConcatMappedHandlerErrors(backpackOpenErrorRules, handlershared.StoreErrorRules)
	handlershared.RespondWithMappedError(c, err, rules, response.CodeInternal, "error.backpack_open_failed")
}

func respondReadError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, handlershared.StoreErrorRules, response.CodeInternal, fallbackKey)
}

package admin

import (
	"github.com/blindbox-next/internal/blindbox"
	handlershared "github.com/blindbox-next/internal/http/handlers/shared"
	"github.com/blindbox-next/internal/http/response"
	"github.com/blindbox-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var probabilityErrorRules = []handlershared.MappedHandlerError{
	{Target: blindbox.ErrWeightsInvalid, Code: response.CodeBadRequest, Key: "error.probability_invalid"},
}

var stockAdjustErrorRules = []handlershared.MappedHandlerError{
	{Target: blindbox.ErrTierInvalid, Code: response.CodeBadRequest, Key: "error.rarity_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

func respondMapped(c *gin.Context, err error, rules []handlershared.MappedHandlerError, fallbackKey string) {
	all := handlershared.ConcatMappedHandlerErrors(rules, handlershared.StoreErrorRules)
	handlershared.RespondWithMappedError(c, err, all, response.CodeInternal, fallbackKey)
}

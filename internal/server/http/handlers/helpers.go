package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/server/http/dto"
	"github.com/polkiloo/foodcourt/internal/server/http/middleware"
)

const (
	kindValidation     = "validation_error"
	kindInternal       = "internal_error"
	msgInternal        = "Internal server error"
	msgMalformedBody   = "Malformed request body"
	msgInvalidIdentity = "Invalid identifier"
)

type errorMapping struct {
	target error
	status int
	kind   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{domainErrors.ErrValidation, http.StatusBadRequest, kindValidation},
	{domainErrors.ErrFoodNotFound, http.StatusBadRequest, "food_not_found"},
	{domainErrors.ErrCrossMerchantItems, http.StatusBadRequest, "cross_merchant_items"},
	{domainErrors.ErrInsufficientBalance, http.StatusBadRequest, "insufficient_balance"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domainErrors.ErrNothingToInvoice, http.StatusBadRequest, "nothing_to_invoice"},
	{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domainErrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domainErrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrConflict, http.StatusConflict, "conflict"},
	{domainErrors.ErrAlreadyExists, http.StatusConflict, "already_exists"},
}

// respondError writes the {message, error} body for err. Unknown errors are
// attached to the context for logging and answered with an opaque 500.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.AbortWithStatusJSON(m.status, dto.ErrorResponse{Message: err.Error(), Error: m.kind})
			return
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: msgInternal, Error: kindInternal})
}

func respondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Error: kindValidation})
}

// currentCaller extracts the authenticated caller from context.
func currentCaller(c *gin.Context) model.Caller {
	caller, _ := middleware.CallerFrom(c)
	return caller
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, msgInvalidIdentity)
		return 0, false
	}
	return id, true
}

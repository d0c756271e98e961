package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"troffee-marketplace-service/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// errorResponse is the wire shape of every error: {error, issues?, details?}
type errorResponse struct {
	Error   string         `json:"error"`
	Issues  []shared.Issue `json:"issues,omitempty"`
	Details string         `json:"details,omitempty"`
}

// respondError maps a service error onto the HTTP error taxonomy: 400 for
// validation and conflicts, 401/403 for auth, 404 for missing records, and a
// logged 500 with a generic message for everything else.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var vErr *shared.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Issues: vErr.Issues})
		return
	}

	switch {
	case errors.Is(err, shared.ErrMissingToken),
		errors.Is(err, shared.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})

	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: "Forbidden"})

	case errors.Is(err, shared.ErrProductNotFound),
		errors.Is(err, shared.ErrOfferNotFound),
		errors.Is(err, shared.ErrBookmarkNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})

	case errors.Is(err, shared.ErrSelfOffer),
		errors.Is(err, shared.ErrOfferAlreadyProcessed),
		errors.Is(err, shared.ErrInvalidOfferStatus),
		errors.Is(err, shared.ErrInvalidOfferAmount),
		errors.Is(err, shared.ErrInvalidOfferRole),
		errors.Is(err, shared.ErrMissingProductID),
		errors.Is(err, shared.ErrInvalidRating),
		errors.Is(err, shared.ErrNoFieldsToUpdate),
		errors.Is(err, shared.ErrNoFilesUploaded),
		errors.Is(err, shared.ErrTooManyFiles):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal error"})
	}
}

// bindJSON binds the request body and, on failure, responds 400 with
// per-field issues. Returns false when the request has been answered.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		issues := make([]shared.Issue, 0, len(vErrs))
		for _, fe := range vErrs {
			issues = append(issues, shared.Issue{
				Field:   fe.Field(),
				Message: ruleMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Issues: issues})
		return false
	}

	c.JSON(http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: err.Error()})
	return false
}

// ruleMessage renders a validator rule failure as a short human message
func ruleMessage(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("failed rule %s=%s", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed rule %s", fe.Tag())
}

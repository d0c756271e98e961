package shared

import "errors"

// Domain-specific errors
var (
	// Product errors
	ErrProductNotFound  = errors.New("product not found")
	ErrNoFieldsToUpdate = errors.New("at least one field required")

	// Offer errors
	ErrOfferNotFound         = errors.New("offer not found")
	ErrSelfOffer             = errors.New("cannot make an offer on your own product")
	ErrOfferAlreadyProcessed = errors.New("offer already processed")
	ErrInvalidOfferStatus    = errors.New("status must be accepted or declined")
	ErrInvalidOfferAmount    = errors.New("offer amount must be greater than 0")
	ErrInvalidOfferRole      = errors.New("role must be buyer or seller")

	// Bookmark errors
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// Review errors
	ErrMissingProductID = errors.New("missing productId")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Authentication errors
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")

	// Upload errors
	ErrNoFilesUploaded = errors.New("no files uploaded")
	ErrTooManyFiles    = errors.New("too many files")

	// Database errors
	ErrDatabaseQuery = errors.New("database query failed")

	// WebSocket errors
	ErrMessageTypeRequired        = errors.New("message type is required")
	ErrUnknownMessageType         = errors.New("unknown message type")
	ErrClientEventChannelNotFound = errors.New("client event channel not found")
)

// Issue describes a single field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field issues for malformed input.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from individual issues.
func NewValidationError(issues ...Issue) *ValidationError {
	return &ValidationError{Issues: issues}
}

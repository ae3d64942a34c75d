// Package i18n provides internationalization support for the fulfillment service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyOrderNotFulfillable indicates the order cannot be fulfilled.
	ErrKeyOrderNotFulfillable = "error.order_not_fulfillable"
	// ErrKeyUpstreamError indicates a shipping provider failure.
	ErrKeyUpstreamError = "error.upstream_error"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
)

// Success message translation keys.
const (
	// SuccessKeyOrderOptimized indicates successful order optimization.
	SuccessKeyOrderOptimized = "success.order_optimized"
	// SuccessKeyOptionsFetched indicates successful shipping options lookup.
	SuccessKeyOptionsFetched = "success.options_fetched"
)

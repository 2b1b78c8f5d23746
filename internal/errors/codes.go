package errors

// Error code constants, format CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email or password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // access token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or tampered token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // invalid or expired reset token

	// Validation (VALIDATION_)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"

	// Resources (RESOURCE_)
	ResourceNotFound = "RESOURCE_NOT_FOUND"

	// Throttling (RATE_)
	RateLimitExceeded = "RATE_LIMIT_EXCEEDED"

	// Internal (INTERNAL_)
	InternalServerError = "INTERNAL_SERVER_ERROR"
)

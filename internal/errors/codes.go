package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationEmptyBatch    ErrorCode = "VALIDATION_004"
	ValidationInvalidID     ErrorCode = "VALIDATION_005"
)

// Currency error codes (CURRENCY_*)
const (
	CurrencyUnknown     ErrorCode = "CURRENCY_001"
	CurrencyRateMissing ErrorCode = "CURRENCY_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound     ErrorCode = "CATEGORY_001"
	CategoryNameTooShort ErrorCode = "CATEGORY_002"
	CategoryConflict     ErrorCode = "CATEGORY_003"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound      ErrorCode = "EXPENSE_001"
	ExpenseAccessDenied  ErrorCode = "EXPENSE_002"
	ExpenseInvalidAmount ErrorCode = "EXPENSE_003"
)

// User error codes (USER_*)
const (
	UserNotFound ErrorCode = "USER_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid username or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationEmptyBatch:    "No expenses found in request",
	ValidationInvalidID:     "Id must be either * or a number",

	// Currency errors
	CurrencyUnknown:     "Wrong currency code",
	CurrencyRateMissing: "No conversion rate available for currency pair",

	// Category errors
	CategoryNotFound:     "Category not found",
	CategoryNameTooShort: "Category name should have at least 3 characters",
	CategoryConflict:     "Category was created concurrently, please retry",

	// Expense errors
	ExpenseNotFound:      "Expense not found",
	ExpenseAccessDenied:  "Unauthorized access",
	ExpenseInvalidAmount: "Expense amount must be positive",

	// User errors
	UserNotFound: "User not found",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

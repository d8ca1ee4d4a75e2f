package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

// TestNewErrorResponse_BasicUsage tests creating a basic error response
func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(ExpenseNotFound, s.traceID)

	s.NotNil(response)
	s.Equal("EXPENSE_001", response.Error.Code)
	s.Equal("Expense not found", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

// TestNewErrorResponse_WithDetails tests creating error response with details
func (s *ResponseTestSuite) TestNewErrorResponse_WithDetails() {
	details := []string{"Field validation failed", "Currency is required"}
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails(details...))

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal("Validation failed", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Equal(details, response.Error.Details)
}

// TestNewErrorResponse_WithCustomMessage tests overriding the default message
func (s *ResponseTestSuite) TestNewErrorResponse_WithCustomMessage() {
	customMessage := "Wrong currency code for index [2] and Currency code [XYZ]!"
	response := NewErrorResponse(CurrencyUnknown, s.traceID, WithMessage(customMessage))

	s.NotNil(response)
	s.Equal("CURRENCY_001", response.Error.Code)
	s.Equal(customMessage, response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
}

// TestNewErrorResponse_WithMultipleOptions tests using multiple functional options
func (s *ResponseTestSuite) TestNewErrorResponse_WithMultipleOptions() {
	customMessage := "Custom message"
	details := []string{"Detail 1", "Detail 2"}
	response := NewErrorResponse(
		CategoryNotFound,
		s.traceID,
		WithMessage(customMessage),
		WithDetails(details...),
	)

	s.NotNil(response)
	s.Equal("CATEGORY_001", response.Error.Code)
	s.Equal(customMessage, response.Error.Message)
	s.Equal(details, response.Error.Details)
	s.Equal(s.traceID, response.Error.TraceID)
}

// TestNewValidationError_WithFieldErrors tests creating validation error from field map
func (s *ResponseTestSuite) TestNewValidationError_WithFieldErrors() {
	fieldErrors := map[string]string{
		"currency": "must be a three-letter ISO-4217 currency code",
		"category": "must be at least 3 characters long",
		"name":     "is required",
	}

	response := NewValidationError(fieldErrors, s.traceID)

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal("Validation failed", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Len(response.Error.Details, 3)

	// Field order varies with map iteration
	detailsMap := make(map[string]bool)
	for _, detail := range response.Error.Details {
		detailsMap[detail] = true
	}
	s.True(detailsMap["currency: must be a three-letter ISO-4217 currency code"])
	s.True(detailsMap["category: must be at least 3 characters long"])
	s.True(detailsMap["name: is required"])
}

// TestNewValidationError_EmptyFieldErrors tests validation error with empty field map
func (s *ResponseTestSuite) TestNewValidationError_EmptyFieldErrors() {
	response := NewValidationError(map[string]string{}, s.traceID)

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Error.Code)
	s.Empty(response.Error.Details)
}

// TestWrapSystemError tests wrapping internal errors without leaking them
func (s *ResponseTestSuite) TestWrapSystemError() {
	internal := errors.New("pq: connection refused")
	response, err := WrapSystemError(internal, s.traceID)

	s.NotNil(response)
	s.Equal("SYSTEM_001", response.Error.Code)
	s.NotContains(response.Error.Message, "pq:")
	s.Equal(internal, err)
}

// TestToJSON tests the wire shape of the error envelope
func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(ExpenseAccessDenied, s.traceID)

	data, err := response.ToJSON()
	s.NoError(err)

	var decoded map[string]map[string]interface{}
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("EXPENSE_002", decoded["error"]["code"])
	s.Equal("Unauthorized access", decoded["error"]["message"])
	s.Equal(s.traceID, decoded["error"]["trace_id"])
}

// TestGetHTTPStatus verifies the code-to-status mapping. The ownership
// rejection must stay 400 while plain not-found stays 404.
func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationRequiredField, http.StatusBadRequest},
		{ValidationInvalidFormat, http.StatusBadRequest},
		{ValidationEmptyBatch, http.StatusBadRequest},
		{ValidationInvalidID, http.StatusBadRequest},
		{CurrencyUnknown, http.StatusBadRequest},
		{CurrencyRateMissing, http.StatusBadRequest},
		{CategoryNameTooShort, http.StatusBadRequest},
		{ExpenseAccessDenied, http.StatusBadRequest},
		{ExpenseInvalidAmount, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AuthInvalidTokenFormat, http.StatusUnauthorized},
		{ExpenseNotFound, http.StatusNotFound},
		{CategoryNotFound, http.StatusNotFound},
		{UserNotFound, http.StatusNotFound},
		{CategoryConflict, http.StatusConflict},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemDatabaseError, http.StatusInternalServerError},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

// TestGetHTTPStatus_EnvelopeMethod verifies the envelope delegates to the
// same code-to-status mapping as the package-level function.
func (s *ResponseTestSuite) TestGetHTTPStatus_EnvelopeMethod() {
	s.Equal(http.StatusBadRequest, NewErrorResponse(ExpenseAccessDenied, s.traceID).GetHTTPStatus())
	s.Equal(http.StatusNotFound, NewErrorResponse(ExpenseNotFound, s.traceID).GetHTTPStatus())
	s.Equal(http.StatusInternalServerError, NewErrorResponse(SystemInternalError, s.traceID).GetHTTPStatus())

	response := NewErrorResponse(CategoryConflict, s.traceID)
	s.True(response.IsClientError())
	s.False(response.IsServerError())
}

// TestOwnershipRejectionDistinctFromNotFound pins the status split between
// "exists but not yours" and "does not exist".
func (s *ResponseTestSuite) TestOwnershipRejectionDistinctFromNotFound() {
	s.Equal(http.StatusBadRequest, GetHTTPStatus(ExpenseAccessDenied))
	s.Equal(http.StatusNotFound, GetHTTPStatus(ExpenseNotFound))
	s.NotEqual(GetHTTPStatus(ExpenseAccessDenied), GetHTTPStatus(ExpenseNotFound))
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

type currencyProbe struct {
	Currency string `validate:"currency_code"`
}

type categoryProbe struct {
	Category string `validate:"category_name"`
}

func (s *ValidatorTestSuite) TestCurrencyCode() {
	v := New()

	testCases := []struct {
		value       string
		valid       bool
		description string
	}{
		{"USD", true, "well-formed code"},
		{"ZZZ", true, "shape check only, membership is the registry's job"},
		{"usd", false, "lowercase rejected"},
		{"US", false, "too short"},
		{"USDT", false, "too long"},
		{"U$D", false, "non-alphabetic"},
		{"", false, "empty"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			err := v.Struct(currencyProbe{Currency: tc.value})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

func (s *ValidatorTestSuite) TestCategoryName() {
	v := New()

	testCases := []struct {
		value       string
		valid       bool
		description string
	}{
		{"Groceries", true, "normal name"},
		{"abc", true, "minimum length accepted"},
		{"ab", false, "two characters rejected"},
		{"a", false, "one character rejected"},
		{"", false, "empty rejected"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			err := v.Struct(categoryProbe{Category: tc.value})
			if tc.valid {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}
}

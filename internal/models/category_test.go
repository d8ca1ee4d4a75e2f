package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CategoryTestSuite struct {
	suite.Suite
}

func TestCategorySuite(t *testing.T) {
	suite.Run(t, new(CategoryTestSuite))
}

func (s *CategoryTestSuite) TestValidate_ValidCategory() {
	category := Category{
		UserID: uuid.New(),
		Name:   "Groceries",
	}
	s.NoError(category.Validate())
}

func (s *CategoryTestSuite) TestValidate_NameTooShort() {
	testCases := []struct {
		name        string
		description string
	}{
		{"", "empty name"},
		{"a", "one character"},
		{"ab", "two characters"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			category := Category{UserID: uuid.New(), Name: tc.name}
			s.ErrorIs(category.Validate(), ErrCategoryNameTooShort)
		})
	}
}

func (s *CategoryTestSuite) TestValidate_MinimumLengthNameAccepted() {
	category := Category{UserID: uuid.New(), Name: "abc"}
	s.NoError(category.Validate())
}

func (s *CategoryTestSuite) TestValidate_NegativeThreshold() {
	category := Category{
		UserID:    uuid.New(),
		Name:      "Groceries",
		Threshold: decimal.RequireFromString("-10"),
	}
	s.Error(category.Validate())
}

func (s *CategoryTestSuite) TestHasThreshold() {
	testCases := []struct {
		threshold string
		expected  bool
	}{
		{"0", false},
		{"0.00", false},
		{"0.01", true},
		{"100", true},
	}

	for _, tc := range testCases {
		category := Category{Threshold: decimal.RequireFromString(tc.threshold)}
		s.Equal(tc.expected, category.HasThreshold(), "threshold %s", tc.threshold)
	}
}

func (s *CategoryTestSuite) TestNewThresholdNotification() {
	category := Category{
		ID:        7,
		Name:      "Groceries",
		Threshold: decimal.RequireFromString("100"),
	}

	notification := NewThresholdNotification(&category, decimal.RequireFromString("150.5"))

	s.Equal(uint(7), notification.CategoryID)
	s.Equal("Groceries", notification.CategoryName)
	s.Equal("Threshold of 100.00 reached for category Groceries: spent 150.50", notification.Message)
	s.True(notification.Spent.Equal(decimal.RequireFromString("150.5")))
	s.True(notification.Threshold.Equal(decimal.RequireFromString("100")))
}

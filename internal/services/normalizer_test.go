package services

import (
	"testing"

	"moneytrack/internal/currency"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AmountNormalizerTestSuite struct {
	suite.Suite
	normalizer AmountNormalizerInterface
}

func TestAmountNormalizerSuite(t *testing.T) {
	suite.Run(t, new(AmountNormalizerTestSuite))
}

func (s *AmountNormalizerTestSuite) SetupTest() {
	registry := currency.NewRegistryWithRates(map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.5"),
		"JPY": decimal.NewFromInt(150),
	})
	s.normalizer = NewAmountNormalizer(registry, nil)
}

func (s *AmountNormalizerTestSuite) TestNormalize_SameCurrencyIsIdentity() {
	// The exact input comes back, untouched by rate lookup or rounding.
	amount := decimal.RequireFromString("42.999")

	result, err := s.normalizer.Normalize(amount, "USD", "USD")
	s.NoError(err)
	s.True(result.Equal(amount))
}

func (s *AmountNormalizerTestSuite) TestNormalize_SameUnknownCurrencyIsIdentity() {
	// from == to short-circuits before any registry validation
	amount := decimal.RequireFromString("10")

	result, err := s.normalizer.Normalize(amount, "ZZZ", "ZZZ")
	s.NoError(err)
	s.True(result.Equal(amount))
}

func (s *AmountNormalizerTestSuite) TestNormalize_Converts() {
	// 1 EUR = 2 USD under the test rates
	result, err := s.normalizer.Normalize(decimal.RequireFromString("10"), "EUR", "USD")
	s.NoError(err)
	s.True(result.Equal(decimal.RequireFromString("20")), "got %s", result)
}

func (s *AmountNormalizerTestSuite) TestNormalize_RoundsToTwoPlaces() {
	// 100 JPY -> USD at 1/150 = 0.666..., rounded to 0.67
	result, err := s.normalizer.Normalize(decimal.RequireFromString("100"), "JPY", "USD")
	s.NoError(err)
	s.True(result.Equal(decimal.RequireFromString("0.67")), "got %s", result)
}

func (s *AmountNormalizerTestSuite) TestNormalize_UnknownCurrency() {
	_, err := s.normalizer.Normalize(decimal.RequireFromString("10"), "ZZZ", "USD")
	s.ErrorIs(err, currency.ErrUnknownCurrency)
}

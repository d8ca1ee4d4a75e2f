package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// amountNormalizer implements AmountNormalizerInterface
type amountNormalizer struct {
	registry CurrencyRegistryInterface
	metrics  MetricsRecorderInterface
}

// NewAmountNormalizer creates a new amount normalizer
func NewAmountNormalizer(registry CurrencyRegistryInterface, metrics MetricsRecorderInterface) AmountNormalizerInterface {
	return &amountNormalizer{
		registry: registry,
		metrics:  metrics,
	}
}

// Normalize converts amount from one currency into another. Equal currencies
// return the amount untouched with no rate lookup, so no rounding drift is
// possible on the common path.
func (n *amountNormalizer) Normalize(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := n.registry.Rate(from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to normalize %s to %s: %w", from, to, err)
	}

	if n.metrics != nil {
		n.metrics.RecordNormalization(from, to)
	}

	return amount.Mul(rate).Round(2), nil
}

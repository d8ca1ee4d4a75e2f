package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Notification is produced when a category's accumulated spend reaches its
// configured threshold. It is an ephemeral result object returned alongside
// the triggering create or update response and is never persisted.
type Notification struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Message      string          `json:"message"`
	Spent        decimal.Decimal `json:"spent"`
	Threshold    decimal.Decimal `json:"threshold"`
}

// NewThresholdNotification builds the notification for a crossed threshold.
func NewThresholdNotification(category *Category, spent decimal.Decimal) *Notification {
	return &Notification{
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Message: fmt.Sprintf("Threshold of %s reached for category %s: spent %s",
			category.Threshold.StringFixed(2), category.Name, spent.StringFixed(2)),
		Spent:     spent,
		Threshold: category.Threshold,
	}
}

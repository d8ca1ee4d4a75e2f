package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount       = errors.New("expense amount must be positive")
	ErrInvalidCurrencyCode = errors.New("expense currency must be a 3-letter ISO code")
)

// Expense is a single spending record. DefaultCurrencyAmount always holds the
// amount expressed in the owning user's default currency as of the most
// recent normalization; it equals Amount exactly when Currency matches the
// user's default currency. The recording pipeline sets it explicitly on
// every write; the model never derives it from Amount.
type Expense struct {
	ID                    uint            `gorm:"primary_key;autoIncrement" json:"id"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID            uint            `gorm:"not null;index" json:"category_id"`
	Name                  string          `gorm:"type:varchar(255);not null" json:"name"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency              string          `gorm:"type:char(3);not null" json:"currency"`
	DefaultCurrencyAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"default_currency_amount"`
	CreatedAt             time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}

func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return errors.New("expense owner is required")
	}

	if e.CategoryID == 0 {
		return errors.New("expense category is required")
	}

	if e.Name == "" {
		return errors.New("expense name is required")
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !currencyCodeRegex.MatchString(e.Currency) {
		return ErrInvalidCurrencyCode
	}

	return nil
}

// IsOwnedBy reports whether the expense belongs to the given user.
func (e *Expense) IsOwnedBy(userID uuid.UUID) bool {
	return e.UserID == userID
}

func (e *Expense) TableName() string {
	return "expenses"
}

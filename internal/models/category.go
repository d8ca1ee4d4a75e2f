package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DefaultCategoryColour is assigned when a category is auto-created
	// while recording an expense.
	DefaultCategoryColour = "stable"

	// MinCategoryNameLength is the minimum length of a category name.
	MinCategoryNameLength = 3
)

var (
	ErrCategoryNameTooShort = errors.New("category name should have at least 3 characters")
)

// Category is a per-user spending bucket. The (user_id, name) pair is the
// natural unique key; the unique index is the final arbiter when two requests
// race to create the same category. A threshold of zero means no threshold
// is configured and no notification is ever produced for the category.
type Category struct {
	ID        uint            `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name      string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name" json:"name"`
	Colour    string          `gorm:"type:varchar(30);not null;default:'stable'" json:"colour"`
	Threshold decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"threshold"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`

	// Expenses are removed together with their category.
	Expenses []Expense `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	if c.Colour == "" {
		c.Colour = DefaultCategoryColour
	}

	return c.Validate()
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("category owner is required")
	}

	if len(c.Name) < MinCategoryNameLength {
		return ErrCategoryNameTooShort
	}

	if c.Threshold.IsNegative() {
		return errors.New("category threshold cannot be negative")
	}

	return nil
}

// HasThreshold reports whether a spending ceiling is configured.
// Zero means disabled, not "alert on any spend".
func (c *Category) HasThreshold() bool {
	return c.Threshold.IsPositive()
}

func (c *Category) TableName() string {
	return "categories"
}

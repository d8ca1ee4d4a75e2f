package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// User owns categories and expenses. Identity is immutable once created;
// the default currency is the target every expense amount is normalized into.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	DefaultCurrency string    `gorm:"type:char(3);not null;default:'USD'" json:"default_currency"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`

	Categories []Category `gorm:"foreignKey:UserID" json:"-"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	if u.DefaultCurrency == "" {
		u.DefaultCurrency = "USD"
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		// Map-based updates carry an empty model; skip struct validation
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return u.Validate()
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}

	if u.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(u.Email) {
		return errors.New("invalid email format")
	}

	if !currencyCodeRegex.MatchString(u.DefaultCurrency) {
		return errors.New("default currency must be a 3-letter ISO code")
	}

	return nil
}

func (u *User) TableName() string {
	return "users"
}

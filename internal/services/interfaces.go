package services

import (
	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyRegistryInterface validates currency codes and resolves rates
type CurrencyRegistryInterface interface {
	Validate(code string) bool
	Rate(from, to string) (decimal.Decimal, error)
}

// AmountNormalizerInterface converts amounts into a target currency
type AmountNormalizerInterface interface {
	Normalize(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// CategoryResolverInterface finds or atomically creates a user's category by name
type CategoryResolverInterface interface {
	ResolveOrCreate(tx *gorm.DB, userID uuid.UUID, name string) (*models.Category, error)
}

// ThresholdNotifierInterface evaluates a category's accumulated spend against
// its configured threshold
type ThresholdNotifierInterface interface {
	RegisterThresholdNotification(tx *gorm.DB, category *models.Category) (*models.Notification, error)
}

// NewExpense is the raw input for recording one expense
type NewExpense struct {
	Name         string
	CategoryName string
	Amount       decimal.Decimal
	Currency     string
}

// ExpenseRecorderInterface orchestrates validation, category resolution,
// amount normalization, persistence and threshold notification. Every
// operation takes the authenticated caller explicitly; there is no ambient
// identity.
type ExpenseRecorderInterface interface {
	CreateBatch(caller *models.User, items []NewExpense) ([]models.Expense, *models.Notification, error)
	Update(caller *models.User, id uint, changes NewExpense) (*models.Expense, *models.Notification, error)
	Delete(caller *models.User, id uint) error
	DeleteAllForUser(caller *models.User) error
	DeleteAllForCategory(caller *models.User, categoryID uint) error
	FindByID(caller *models.User, id uint) (*models.Expense, error)
	FindAll(caller *models.User) ([]models.Expense, error)
	FindByRange(caller *models.User, categorySelector string, startMillis, endMillis int64) ([]models.Expense, error)
}

// TokenServiceInterface issues and validates access tokens
type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, error)
	ValidateAccessToken(tokenString string) (*models.AccessClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface hashes and verifies passwords
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
}

// MetricsRecorderInterface records pipeline metrics
type MetricsRecorderInterface interface {
	RecordExpensesCreated(count int)
	RecordExpenseUpdated()
	RecordExpensesDeleted(count int)
	RecordNormalization(from, to string)
	RecordCategoryAutoCreated()
	RecordThresholdNotification()
	ObserveRecorderDuration(operation string, milliseconds float64)
}

// DemoDataGeneratorInterface produces realistic sample expenses for development
type DemoDataGeneratorInterface interface {
	GenerateExpenses(count int) []NewExpense
}

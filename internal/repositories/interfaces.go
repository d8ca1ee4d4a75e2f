package repositories

import (
	"time"

	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateDefaultCurrency(userID uuid.UUID, currency string) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetByUserAndName(userID uuid.UUID, name string) (*models.Category, error)
	GetByUser(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) CategoryRepositoryInterface
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	Save(expense *models.Expense) error
	GetByID(id uint) (*models.Expense, error)
	GetByUser(userID uuid.UUID) ([]models.Expense, error)
	GetByUserAndTimeRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	GetByUserCategoryAndTimeRange(userID uuid.UUID, categoryID uint, start, end time.Time) ([]models.Expense, error)
	Delete(id uint) error
	DeleteAllByUser(userID uuid.UUID) error
	DeleteAllByCategoryAndUser(categoryID uint, userID uuid.UUID) error
	SumDefaultCurrencyAmountByCategory(categoryID uint) (decimal.Decimal, error)
	WithTx(tx *gorm.DB) ExpenseRepositoryInterface
}

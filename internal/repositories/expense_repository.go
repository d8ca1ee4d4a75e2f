package repositories

import (
	"errors"
	"fmt"
	"time"

	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// expenseRepository implements ExpenseRepositoryInterface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *expenseRepository) WithTx(tx *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: tx}
}

// Create creates a new expense
func (r *expenseRepository) Create(expense *models.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// Save persists all fields of an existing expense
func (r *expenseRepository) Save(expense *models.Expense) error {
	if err := r.db.Save(expense).Error; err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID with its category loaded
func (r *expenseRepository) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.Preload("Category").Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &expense, nil
}

// GetByUser retrieves all expenses owned by a user
func (r *expenseRepository) GetByUser(userID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, nil
}

// GetByUserAndTimeRange retrieves a user's expenses within a time range
func (r *expenseRepository) GetByUserAndTimeRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Category").
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, start, end).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by time range: %w", err)
	}
	return expenses, nil
}

// GetByUserCategoryAndTimeRange retrieves a user's expenses for one category within a time range
func (r *expenseRepository) GetByUserCategoryAndTimeRange(userID uuid.UUID, categoryID uint, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Preload("Category").
		Where("user_id = ? AND category_id = ? AND created_at BETWEEN ? AND ?", userID, categoryID, start, end).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by category and time range: %w", err)
	}
	return expenses, nil
}

// Delete removes an expense by ID
func (r *expenseRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Expense{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// DeleteAllByUser removes every expense owned by the user
func (r *expenseRepository) DeleteAllByUser(userID uuid.UUID) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Expense{}).Error; err != nil {
		return fmt.Errorf("failed to delete expenses for user: %w", err)
	}
	return nil
}

// DeleteAllByCategoryAndUser removes the user's expenses in one category.
// Scoping by user keeps the operation inside the caller's ownership even if
// the category ID belongs to someone else.
func (r *expenseRepository) DeleteAllByCategoryAndUser(categoryID uint, userID uuid.UUID) error {
	if err := r.db.Where("category_id = ? AND user_id = ?", categoryID, userID).
		Delete(&models.Expense{}).Error; err != nil {
		return fmt.Errorf("failed to delete expenses for category: %w", err)
	}
	return nil
}

// SumDefaultCurrencyAmountByCategory computes the category's aggregate spend
// as the all-time sum of default-currency amounts.
func (r *expenseRepository) SumDefaultCurrencyAmountByCategory(categoryID uint) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(default_currency_amount), 0) as total").
		Where("category_id = ?", categoryID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum category spend: %w", err)
	}

	return result.Total, nil
}

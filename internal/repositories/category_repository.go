package repositories

import (
	"errors"
	"fmt"
	"strings"

	"moneytrack/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryDuplicate signals that the (user, name) unique constraint
	// fired. The resolver treats this as "someone else already created it"
	// and retries the lookup rather than failing the request.
	ErrCategoryDuplicate = errors.New("category already exists for user")
)

const pqUniqueViolation = "23505"

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given transaction
func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: tx}
}

// Create persists a new category. Unique-constraint violations on
// (user_id, name) are translated to ErrCategoryDuplicate.
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryDuplicate
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByUserAndName retrieves a category by the exact (user, name) pair
func (r *categoryRepository) GetByUserAndName(userID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &category, nil
}

// GetByUser retrieves all categories owned by a user
func (r *categoryRepository) GetByUser(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Update persists changes to a category
func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryDuplicate
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete removes a category; its expenses are removed by the cascade.
func (r *categoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// isUniqueViolation detects a unique-constraint failure across the drivers
// in use: GORM's translated error, lib/pq's error code, and the sqlite
// message used by the test database.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

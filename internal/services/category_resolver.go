package services

import (
	"errors"
	"log/slog"

	"moneytrack/internal/models"
	"moneytrack/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCategoryConflict is surfaced only when the race-loser's retry
	// lookup also fails; callers may safely retry the whole request.
	ErrCategoryConflict = errors.New("concurrent category creation, retry")
)

// categoryResolver implements CategoryResolverInterface
type categoryResolver struct {
	categories repositories.CategoryRepositoryInterface
	metrics    MetricsRecorderInterface
	logger     *slog.Logger
}

// NewCategoryResolver creates a new category resolver
func NewCategoryResolver(categories repositories.CategoryRepositoryInterface, metrics MetricsRecorderInterface, logger *slog.Logger) CategoryResolverInterface {
	return &categoryResolver{
		categories: categories,
		metrics:    metrics,
		logger:     logger,
	}
}

// ResolveOrCreate looks up the category by the exact (user, name) pair and
// creates it when absent. The create is persisted immediately inside the
// enclosing transaction so that later lookups in the same unit of work see
// it. Idempotent: a second call with the same pair returns the first row.
func (r *categoryResolver) ResolveOrCreate(tx *gorm.DB, userID uuid.UUID, name string) (*models.Category, error) {
	if len(name) < models.MinCategoryNameLength {
		return nil, models.ErrCategoryNameTooShort
	}

	repo := r.categories.WithTx(tx)

	category, err := repo.GetByUserAndName(userID, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, err
	}

	category = &models.Category{
		UserID: userID,
		Name:   name,
		Colour: models.DefaultCategoryColour,
	}

	createErr := repo.Create(category)
	if createErr == nil {
		if r.metrics != nil {
			r.metrics.RecordCategoryAutoCreated()
		}
		r.logger.Info("category auto-created",
			"user_id", userID,
			"category", name,
		)
		return category, nil
	}

	if errors.Is(createErr, repositories.ErrCategoryDuplicate) {
		// Lost the creation race; the unique constraint on (user_id, name)
		// is the arbiter and the winner's row is the one to use.
		category, err = repo.GetByUserAndName(userID, name)
		if err == nil {
			return category, nil
		}
		return nil, ErrCategoryConflict
	}

	return nil, createErr
}

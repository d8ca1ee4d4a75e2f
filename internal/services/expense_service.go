package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"moneytrack/internal/models"
	"moneytrack/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllCategoriesSelector is the category path segment meaning "all categories"
// on the time-range listing endpoint.
const AllCategoriesSelector = "*"

var (
	ErrEmptyBatch        = errors.New("no expenses found in request")
	ErrNotOwner          = errors.New("unauthorized access")
	ErrInvalidCategoryID = errors.New("id must be either * or a number")
	ErrValidation        = errors.New("validation failed")
)

// CurrencyCodeError reports an invalid currency code, carrying the batch
// index of the offending item where applicable.
type CurrencyCodeError struct {
	Index int
	Code  string
}

func (e *CurrencyCodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("Wrong currency code for index [%d] and Currency code [%s]!", e.Index, e.Code)
	}
	return fmt.Sprintf("Wrong currency code [%s]", e.Code)
}

// expenseRecorder implements ExpenseRecorderInterface. It owns the unit of
// work: every operation's reads and writes, including category auto-creation,
// commit or roll back together.
type expenseRecorder struct {
	db         *gorm.DB
	expenses   repositories.ExpenseRepositoryInterface
	registry   CurrencyRegistryInterface
	resolver   CategoryResolverInterface
	normalizer AmountNormalizerInterface
	notifier   ThresholdNotifierInterface
	metrics    MetricsRecorderInterface
	logger     *slog.Logger
}

// NewExpenseRecorder creates a new expense recorder
func NewExpenseRecorder(
	db *gorm.DB,
	expenses repositories.ExpenseRepositoryInterface,
	registry CurrencyRegistryInterface,
	resolver CategoryResolverInterface,
	normalizer AmountNormalizerInterface,
	notifier ThresholdNotifierInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseRecorderInterface {
	return &expenseRecorder{
		db:         db,
		expenses:   expenses,
		registry:   registry,
		resolver:   resolver,
		normalizer: normalizer,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
	}
}

// CreateBatch records a non-empty batch of expenses in submitted order as one
// atomic unit of work. A failure on any item aborts the whole batch. After
// all items are written the threshold notifier is invoked on the first item's
// resolved category only, preserving the documented source behavior.
func (r *expenseRecorder) CreateBatch(caller *models.User, items []NewExpense) ([]models.Expense, *models.Notification, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	start := time.Now()
	var created []models.Expense
	var notification *models.Notification

	err := r.db.Transaction(func(tx *gorm.DB) error {
		expRepo := r.expenses.WithTx(tx)
		var firstCategory *models.Category

		for i, item := range items {
			if err := validateNewExpense(item); err != nil {
				return err
			}
			if !r.registry.Validate(item.Currency) {
				return &CurrencyCodeError{Index: i, Code: item.Currency}
			}

			category, err := r.resolver.ResolveOrCreate(tx, caller.ID, item.CategoryName)
			if err != nil {
				return err
			}

			defaultAmount, err := r.normalizer.Normalize(item.Amount, item.Currency, caller.DefaultCurrency)
			if err != nil {
				return err
			}

			expense := models.Expense{
				UserID:                caller.ID,
				CategoryID:            category.ID,
				Name:                  item.Name,
				Amount:                item.Amount,
				Currency:              item.Currency,
				DefaultCurrencyAmount: defaultAmount,
			}

			if err := expRepo.Create(&expense); err != nil {
				return err
			}

			expense.Category = *category
			created = append(created, expense)

			if i == 0 {
				firstCategory = category
			}
		}

		var err error
		notification, err = r.notifier.RegisterThresholdNotification(tx, firstCategory)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if r.metrics != nil {
		r.metrics.RecordExpensesCreated(len(created))
		r.metrics.ObserveRecorderDuration("create", float64(time.Since(start).Milliseconds()))
	}
	r.logger.Info("expenses recorded",
		"user_id", caller.ID,
		"count", len(created),
		"notified", notification != nil,
	)

	return created, notification, nil
}

// Update merges new values into an existing expense owned by the caller.
// The default-currency amount is recomputed only when the category changed,
// the amount or currency differ from the stored expense, or the caller's
// default currency differs from the new currency.
func (r *expenseRecorder) Update(caller *models.User, id uint, changes NewExpense) (*models.Expense, *models.Notification, error) {
	start := time.Now()
	var updated *models.Expense
	var notification *models.Notification

	err := r.db.Transaction(func(tx *gorm.DB) error {
		expRepo := r.expenses.WithTx(tx)

		stored, err := expRepo.GetByID(id)
		if err != nil {
			return err
		}
		if !stored.IsOwnedBy(caller.ID) {
			return ErrNotOwner
		}

		if err := validateNewExpense(changes); err != nil {
			return err
		}
		if !r.registry.Validate(changes.Currency) {
			return &CurrencyCodeError{Index: -1, Code: changes.Currency}
		}

		category := &stored.Category
		categoryChanged := changes.CategoryName != stored.Category.Name
		if categoryChanged {
			category, err = r.resolver.ResolveOrCreate(tx, caller.ID, changes.CategoryName)
			if err != nil {
				return err
			}
		}

		needsNormalization := categoryChanged ||
			!changes.Amount.Equal(stored.Amount) ||
			changes.Currency != stored.Currency ||
			caller.DefaultCurrency != changes.Currency

		stored.Name = changes.Name
		stored.Amount = changes.Amount
		stored.Currency = changes.Currency
		stored.CategoryID = category.ID
		stored.Category = *category

		if needsNormalization {
			stored.DefaultCurrencyAmount, err = r.normalizer.Normalize(changes.Amount, changes.Currency, caller.DefaultCurrency)
			if err != nil {
				return err
			}
		}

		if err := expRepo.Save(stored); err != nil {
			return err
		}

		updated = stored
		notification, err = r.notifier.RegisterThresholdNotification(tx, category)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if r.metrics != nil {
		r.metrics.RecordExpenseUpdated()
		r.metrics.ObserveRecorderDuration("update", float64(time.Since(start).Milliseconds()))
	}

	return updated, notification, nil
}

// Delete removes a single expense after existence and ownership checks.
func (r *expenseRecorder) Delete(caller *models.User, id uint) error {
	expense, err := r.expenses.GetByID(id)
	if err != nil {
		return err
	}
	if !expense.IsOwnedBy(caller.ID) {
		return ErrNotOwner
	}

	if err := r.expenses.Delete(id); err != nil {
		return err
	}

	if r.metrics != nil {
		r.metrics.RecordExpensesDeleted(1)
	}
	return nil
}

// DeleteAllForUser removes every expense owned by the caller.
func (r *expenseRecorder) DeleteAllForUser(caller *models.User) error {
	return r.expenses.DeleteAllByUser(caller.ID)
}

// DeleteAllForCategory removes the caller's expenses in one category. The
// user scope on the delete keeps other users' rows untouched regardless of
// the category ID supplied.
func (r *expenseRecorder) DeleteAllForCategory(caller *models.User, categoryID uint) error {
	return r.expenses.DeleteAllByCategoryAndUser(categoryID, caller.ID)
}

// FindByID retrieves one expense, rejecting callers that do not own it.
func (r *expenseRecorder) FindByID(caller *models.User, id uint) (*models.Expense, error) {
	expense, err := r.expenses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !expense.IsOwnedBy(caller.ID) {
		return nil, ErrNotOwner
	}
	return expense, nil
}

// FindAll retrieves every expense owned by the caller.
func (r *expenseRecorder) FindAll(caller *models.User) ([]models.Expense, error) {
	return r.expenses.GetByUser(caller.ID)
}

// FindByRange lists the caller's expenses in a time range, optionally scoped
// to one category ("*" means all). Expenses whose currency differs from the
// caller's current default currency are re-normalized and persisted before
// being returned, so browsing keeps default-currency amounts current.
func (r *expenseRecorder) FindByRange(caller *models.User, categorySelector string, startMillis, endMillis int64) ([]models.Expense, error) {
	startTime := time.UnixMilli(startMillis)
	endTime := time.UnixMilli(endMillis)

	var expenses []models.Expense
	var err error

	if categorySelector == AllCategoriesSelector {
		expenses, err = r.expenses.GetByUserAndTimeRange(caller.ID, startTime, endTime)
	} else {
		categoryID, parseErr := strconv.ParseUint(categorySelector, 10, 64)
		if parseErr != nil {
			return nil, ErrInvalidCategoryID
		}
		expenses, err = r.expenses.GetByUserCategoryAndTimeRange(caller.ID, uint(categoryID), startTime, endTime)
	}
	if err != nil {
		return nil, err
	}

	if err := r.renormalizeStale(caller, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// renormalizeStale recomputes and persists default-currency amounts for
// expenses recorded in a currency other than the caller's current default.
func (r *expenseRecorder) renormalizeStale(caller *models.User, expenses []models.Expense) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		expRepo := r.expenses.WithTx(tx)

		for i := range expenses {
			expense := &expenses[i]
			if expense.Currency == caller.DefaultCurrency {
				continue
			}

			normalized, err := r.normalizer.Normalize(expense.Amount, expense.Currency, caller.DefaultCurrency)
			if err != nil {
				return err
			}
			if normalized.Equal(expense.DefaultCurrencyAmount) {
				continue
			}

			expense.DefaultCurrencyAmount = normalized
			if err := expRepo.Save(expense); err != nil {
				return err
			}
		}
		return nil
	})
}

func validateNewExpense(item NewExpense) error {
	if item.Name == "" {
		return fmt.Errorf("%w: expense name is required", ErrValidation)
	}
	if item.CategoryName == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if item.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: expense amount must be positive", ErrValidation)
	}
	return nil
}

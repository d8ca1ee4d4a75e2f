package services

import (
	"log/slog"

	"moneytrack/internal/models"
	"moneytrack/internal/repositories"

	"gorm.io/gorm"
)

// thresholdNotifier implements ThresholdNotifierInterface
type thresholdNotifier struct {
	expenses repositories.ExpenseRepositoryInterface
	metrics  MetricsRecorderInterface
	logger   *slog.Logger
}

// NewThresholdNotifier creates a new threshold notifier
func NewThresholdNotifier(expenses repositories.ExpenseRepositoryInterface, metrics MetricsRecorderInterface, logger *slog.Logger) ThresholdNotifierInterface {
	return &thresholdNotifier{
		expenses: expenses,
		metrics:  metrics,
		logger:   logger,
	}
}

// RegisterThresholdNotification evaluates the category's accumulated spend
// (all-time sum of default-currency amounts) against its threshold and
// produces a notification when spend >= threshold. A zero threshold means
// the category is unconfigured and never notifies. Read-then-decide only;
// neither the category nor its expenses are mutated.
func (n *thresholdNotifier) RegisterThresholdNotification(tx *gorm.DB, category *models.Category) (*models.Notification, error) {
	if category == nil || !category.HasThreshold() {
		return nil, nil
	}

	spent, err := n.expenses.WithTx(tx).SumDefaultCurrencyAmountByCategory(category.ID)
	if err != nil {
		return nil, err
	}

	if spent.LessThan(category.Threshold) {
		return nil, nil
	}

	if n.metrics != nil {
		n.metrics.RecordThresholdNotification()
	}
	n.logger.Info("category threshold reached",
		"category_id", category.ID,
		"category", category.Name,
		"threshold", category.Threshold.String(),
		"spent", spent.String(),
	)

	return models.NewThresholdNotification(category, spent), nil
}

package dto

import (
	"time"

	"moneytrack/internal/models"
	"moneytrack/internal/services"

	"github.com/shopspring/decimal"
)

// ExpenseItemRequest is one expense in a create batch or the body of an
// update. Category carries the category name; resolution to an ID happens
// server-side.
type ExpenseItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required,category_name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,currency_code"`
}

// ToNewExpense converts the request item into the recorder's input type
func (r ExpenseItemRequest) ToNewExpense() services.NewExpense {
	return services.NewExpense{
		Name:         r.Name,
		CategoryName: r.Category,
		Amount:       r.Amount,
		Currency:     r.Currency,
	}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Colour    string          `json:"colour"`
	Threshold decimal.Decimal `json:"threshold"`
}

// ExpenseResponse represents a stored expense in API responses
type ExpenseResponse struct {
	ID                    uint             `json:"id"`
	Name                  string           `json:"name"`
	Category              CategoryResponse `json:"category"`
	Amount                decimal.Decimal  `json:"amount"`
	Currency              string           `json:"currency"`
	DefaultCurrencyAmount decimal.Decimal  `json:"default_currency_amount"`
	CreatedAt             time.Time        `json:"created_at"`
}

// NotificationResponse represents a threshold notification in API responses
type NotificationResponse struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Message      string          `json:"message"`
	Spent        decimal.Decimal `json:"spent"`
	Threshold    decimal.Decimal `json:"threshold"`
}

// CreateExpensesResponse wraps a created batch with its (possibly absent)
// threshold notification.
type CreateExpensesResponse struct {
	Expenses     []ExpenseResponse     `json:"expenses"`
	Notification *NotificationResponse `json:"notification,omitempty"`
}

// UpdateExpenseResponse wraps an updated expense with its notification
type UpdateExpenseResponse struct {
	Expense      ExpenseResponse       `json:"expense"`
	Notification *NotificationResponse `json:"notification,omitempty"`
}

// NewExpenseResponse converts a stored expense into its response form
func NewExpenseResponse(expense *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:   expense.ID,
		Name: expense.Name,
		Category: CategoryResponse{
			ID:        expense.Category.ID,
			Name:      expense.Category.Name,
			Colour:    expense.Category.Colour,
			Threshold: expense.Category.Threshold,
		},
		Amount:                expense.Amount,
		Currency:              expense.Currency,
		DefaultCurrencyAmount: expense.DefaultCurrencyAmount,
		CreatedAt:             expense.CreatedAt,
	}
}

// NewExpenseListResponse converts a slice of stored expenses
func NewExpenseListResponse(expenses []models.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, NewExpenseResponse(&expenses[i]))
	}
	return responses
}

// NewNotificationResponse converts a threshold notification, passing nil through
func NewNotificationResponse(notification *models.Notification) *NotificationResponse {
	if notification == nil {
		return nil
	}
	return &NotificationResponse{
		CategoryID:   notification.CategoryID,
		CategoryName: notification.CategoryName,
		Message:      notification.Message,
		Spent:        notification.Spent,
		Threshold:    notification.Threshold,
	}
}

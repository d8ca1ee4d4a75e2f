package handlers

import (
	"net/http"

	"moneytrack/internal/errors"
	"moneytrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	recorder  services.ExpenseRecorderInterface
	generator services.DemoDataGeneratorInterface
	expenses  *ExpenseHandler
}

// NewDevHandler creates a new development handler
func NewDevHandler(recorder services.ExpenseRecorderInterface, expenses *ExpenseHandler) *DevHandler {
	return &DevHandler{
		recorder:  recorder,
		generator: services.NewDemoDataGenerator(),
		expenses:  expenses,
	}
}

// SeedExpenses generates realistic demo expenses for the caller
//
// Method: POST /dev/seed
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of expenses to generate (default: 25, max: 200)
//
// Success Response: 200 OK
//   - expenses_created: Number of expenses recorded
func (h *DevHandler) SeedExpenses(c echo.Context) error {
	caller, errResp := h.expenses.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	count := getIntQueryParam(c, "count", 25)
	if count < 1 {
		count = 1
	}
	if count > 200 {
		count = 200
	}

	items := h.generator.GenerateExpenses(count)

	// One item per batch so the whole seed does not roll back when a single
	// generated expense trips a constraint.
	created := 0
	for _, item := range items {
		if _, _, err := h.recorder.CreateBatch(caller, []services.NewExpense{item}); err != nil {
			continue
		}
		created++
	}

	if created == 0 {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("No demo expenses could be generated"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "demo expenses generated successfully",
		"expenses_created": created,
	})
}

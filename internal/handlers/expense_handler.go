package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"moneytrack/internal/currency"
	"moneytrack/internal/dto"
	"moneytrack/internal/errors"
	"moneytrack/internal/models"
	"moneytrack/internal/repositories"
	"moneytrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	userRepo repositories.UserRepositoryInterface
	recorder services.ExpenseRecorderInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(
	userRepo repositories.UserRepositoryInterface,
	recorder services.ExpenseRecorderInterface,
) *ExpenseHandler {
	return &ExpenseHandler{
		userRepo: userRepo,
		recorder: recorder,
	}
}

// AddExpenses records a batch of expenses for the caller
//
// Method: POST /expense/add
// Body: JSON array of expense items
//
// Success Response: 200 OK with the stored expenses and, when the first
// item's category crossed its threshold, a notification.
//
// Error Responses:
//   - 400: empty batch, invalid currency (names offending index and code),
//     category name too short, validation failure
//   - 401: missing or invalid authentication
//   - 409: concurrent category creation race lost twice
func (h *ExpenseHandler) AddExpenses(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	var req []dto.ExpenseItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Request body must be a JSON array of expenses"))
	}

	if len(req) == 0 {
		return SendError(c, errors.ValidationEmptyBatch)
	}

	items := make([]services.NewExpense, 0, len(req))
	for i, item := range req {
		if err := c.Validate(&item); err != nil {
			return h.sendItemValidationError(c, i, item, err)
		}
		items = append(items, item.ToNewExpense())
	}

	created, notification, err := h.recorder.CreateBatch(caller, items)
	if err != nil {
		return h.sendRecorderError(c, err)
	}

	return c.JSON(http.StatusOK, dto.CreateExpensesResponse{
		Expenses:     dto.NewExpenseListResponse(created),
		Notification: dto.NewNotificationResponse(notification),
	})
}

// FindAllExpenses lists every expense owned by the caller
//
// Method: GET /expense/find_all
//
// Success Response: 200 OK with the expense list, 204 No Content when empty
func (h *ExpenseHandler) FindAllExpenses(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	expenses, err := h.recorder.FindAll(caller)
	if err != nil {
		return SendSystemError(c, err)
	}

	if len(expenses) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// FindExpense retrieves a single expense owned by the caller
//
// Method: GET /expense/find/:id
//
// Error Responses:
//   - 400: caller does not own the expense
//   - 404: expense not found
func (h *ExpenseHandler) FindExpense(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	id, err := parseExpenseID(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a number"))
	}

	expense, err := h.recorder.FindByID(caller, id)
	if err != nil {
		return h.sendRecorderError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseResponse(expense))
}

// FindExpensesByRange lists the caller's expenses in a category and time
// range. The category segment is either a numeric ID or "*" for all
// categories; the two timestamps are unix milliseconds.
//
// Method: GET /expense/find/:id/:start/:end
//
// Success Response: 200 OK with the expense list, 204 No Content when empty
//
// Error Responses:
//   - 400: category segment is neither "*" nor a number, or bad timestamps
func (h *ExpenseHandler) FindExpensesByRange(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	startMillis, err := strconv.ParseInt(c.Param("start"), 10, 64)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Start timestamp must be unix milliseconds"))
	}

	endMillis, err := strconv.ParseInt(c.Param("end"), 10, 64)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("End timestamp must be unix milliseconds"))
	}

	expenses, err := h.recorder.FindByRange(caller, c.Param("id"), startMillis, endMillis)
	if err != nil {
		return h.sendRecorderError(c, err)
	}

	if len(expenses) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// UpdateExpense merges new values into an expense owned by the caller
//
// Method: POST /expense/update/:id
// Body: JSON expense item
//
// Error Responses:
//   - 400: caller does not own the expense, invalid currency, validation
//   - 404: expense not found
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	id, err := parseExpenseID(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a number"))
	}

	var req dto.ExpenseItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Request body must be a JSON expense"))
	}

	if err := c.Validate(&req); err != nil {
		return h.sendItemValidationError(c, -1, req, err)
	}

	updated, notification, err := h.recorder.Update(caller, id, req.ToNewExpense())
	if err != nil {
		return h.sendRecorderError(c, err)
	}

	return c.JSON(http.StatusOK, dto.UpdateExpenseResponse{
		Expense:      dto.NewExpenseResponse(updated),
		Notification: dto.NewNotificationResponse(notification),
	})
}

// DeleteExpense removes a single expense owned by the caller
//
// Method: DELETE /expense/delete/:id
//
// Success Response: 204 No Content
//
// Error Responses:
//   - 400: caller does not own the expense
//   - 404: expense not found
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	id, err := parseExpenseID(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Expense ID must be a number"))
	}

	if err := h.recorder.Delete(caller, id); err != nil {
		return h.sendRecorderError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAllExpenses removes every expense owned by the caller
//
// Method: DELETE /expense/delete_all
//
// Success Response: 204 No Content
func (h *ExpenseHandler) DeleteAllExpenses(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	if err := h.recorder.DeleteAllForUser(caller); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAllExpensesByCategory removes the caller's expenses in one category
//
// Method: DELETE /expense/delete_all/:categoryId
//
// Success Response: 204 No Content
func (h *ExpenseHandler) DeleteAllExpensesByCategory(c echo.Context) error {
	caller, errResp := h.resolveCaller(c)
	if errResp != nil {
		return errResp
	}

	categoryID, err := strconv.ParseUint(c.Param("categoryId"), 10, 64)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Category ID must be a number"))
	}

	if err := h.recorder.DeleteAllForCategory(caller, uint(categoryID)); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// resolveCaller loads the authenticated user, who carries the default
// currency every recorder operation depends on. The second return value is
// the already-sent error response, nil on success.
func (h *ExpenseHandler) resolveCaller(c echo.Context) (*models.User, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return nil, SendError(c, errors.AuthMissingToken)
	}

	caller, err := h.userRepo.GetByID(userID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return nil, SendError(c, errors.AuthInvalidCredentials)
		}
		return nil, SendSystemError(c, err)
	}

	return caller, nil
}

// sendItemValidationError translates validator failures on an expense item.
// Currency failures on a batch item keep the index-bearing message so the
// caller can locate the bad entry.
func (h *ExpenseHandler) sendItemValidationError(c echo.Context, index int, item dto.ExpenseItemRequest, err error) error {
	var fieldErrors validator.ValidationErrors
	if stderrors.As(err, &fieldErrors) {
		for _, fieldErr := range fieldErrors {
			switch fieldErr.Tag() {
			case "currency_code":
				if index >= 0 {
					return SendError(c, errors.CurrencyUnknown,
						errors.WithMessage(fmt.Sprintf("Wrong currency code for index [%d] and Currency code [%s]!", index, item.Currency)))
				}
				return SendError(c, errors.CurrencyUnknown)
			case "category_name":
				return SendError(c, errors.CategoryNameTooShort)
			case "required":
				return SendError(c, errors.ValidationRequiredField,
					errors.WithDetails(fmt.Sprintf("%s is required", fieldErr.Field())))
			}
		}
	}
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
}

// sendRecorderError maps recorder pipeline errors onto the API error codes
func (h *ExpenseHandler) sendRecorderError(c echo.Context, err error) error {
	var currencyErr *services.CurrencyCodeError

	switch {
	case stderrors.Is(err, services.ErrEmptyBatch):
		return SendError(c, errors.ValidationEmptyBatch)
	case stderrors.As(err, &currencyErr):
		return SendError(c, errors.CurrencyUnknown, errors.WithMessage(currencyErr.Error()))
	case stderrors.Is(err, currency.ErrUnknownCurrency):
		return SendError(c, errors.CurrencyUnknown)
	case stderrors.Is(err, currency.ErrRateUnavailable):
		return SendError(c, errors.CurrencyRateMissing)
	case stderrors.Is(err, models.ErrCategoryNameTooShort):
		return SendError(c, errors.CategoryNameTooShort)
	case stderrors.Is(err, services.ErrCategoryConflict):
		return SendError(c, errors.CategoryConflict)
	case stderrors.Is(err, services.ErrNotOwner):
		return SendError(c, errors.ExpenseAccessDenied)
	case stderrors.Is(err, services.ErrInvalidCategoryID):
		return SendError(c, errors.ValidationInvalidID)
	case stderrors.Is(err, services.ErrValidation):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	case stderrors.Is(err, repositories.ErrExpenseNotFound):
		return SendError(c, errors.ExpenseNotFound)
	default:
		return SendSystemError(c, err)
	}
}

func parseExpenseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

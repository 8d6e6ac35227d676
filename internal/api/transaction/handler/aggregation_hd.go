package transactionHandler

import (
	"FinanceTracker/internal/api/transaction"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"FinanceTracker/pkg/handlerUtil"
	jwtPkg "FinanceTracker/pkg/jwt"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// aggregate runs fn for the user the request targets and writes its result.
// Admins may name another user with ?user_id; everyone else is scoped to
// themselves.
func (h *TransactionHandler) aggregate(
	ctx *fiber.Ctx,
	operation string,
	withRange bool,
	fn func(c context.Context, userID int64, from, to *time.Time) (interface{}, error),
) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized access")
	}

	userID, err := targetUser(ctx, userData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	var from, to *time.Time
	if withRange {
		var query transaction.RangeQuery
		if err := ctx.QueryParser(&query); err != nil {
			return errHandler.Handle(ctx, requestID, transaction.ErrInvalidQueryParam, ctx.Path(), "parse_query")
		}
		if err := h.validator.Struct(query); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
		from, to, err = query.Bounds()
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
		}
	}

	res, err := fn(c, userID, from, to)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), operation)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func targetUser(ctx *fiber.Ctx, caller entity.UserLoginData) (int64, error) {
	raw := ctx.Query("user_id")
	if raw == "" {
		return caller.ID, nil
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, transaction.ErrInvalidQueryParam
	}
	if !caller.CanAccess(userID) {
		return 0, transaction.ErrUserFilterForbidden
	}
	return userID, nil
}

func (h *TransactionHandler) HandleGetBalance(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "get_balance", false, func(c context.Context, userID int64, _, _ *time.Time) (interface{}, error) {
		balance, err := h.transactionService.GetBalance(c, userID)
		if err != nil {
			return nil, err
		}
		return transaction.BalanceResponse{Balance: balance}, nil
	})
}

func (h *TransactionHandler) HandleGetTotalIncome(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "get_total_income", true, func(c context.Context, userID int64, from, to *time.Time) (interface{}, error) {
		income, err := h.transactionService.GetTotalIncome(c, userID, from, to)
		if err != nil {
			return nil, err
		}
		return transaction.IncomeResponse{TotalIncome: income}, nil
	})
}

func (h *TransactionHandler) HandleGetTotalExpenses(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "get_total_expenses", true, func(c context.Context, userID int64, from, to *time.Time) (interface{}, error) {
		expenses, err := h.transactionService.GetTotalExpenses(c, userID, from, to)
		if err != nil {
			return nil, err
		}
		return transaction.ExpensesResponse{TotalExpenses: expenses}, nil
	})
}

func (h *TransactionHandler) HandleGetMonthExpense(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "get_month_expense", false, func(c context.Context, userID int64, _, _ *time.Time) (interface{}, error) {
		expense, err := h.transactionService.GetMonthExpense(c, userID)
		if err != nil {
			return nil, err
		}
		return transaction.MonthExpenseResponse{MonthExpense: expense}, nil
	})
}

func (h *TransactionHandler) HandleAnalyzeExpensesByCategory(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "analyze_expenses", true, func(c context.Context, userID int64, from, to *time.Time) (interface{}, error) {
		analysis, err := h.transactionService.AnalyzeExpensesByCategory(c, userID, from, to)
		if err != nil {
			return nil, err
		}

		res := make([]transaction.CategoryExpenseResponse, 0, len(analysis))
		for _, item := range analysis {
			res = append(res, transaction.CategoryExpenseResponse{
				CategoryID:    item.CategoryID,
				CategoryName:  item.CategoryName,
				TotalExpenses: item.TotalExpenses,
			})
		}
		return res, nil
	})
}

func (h *TransactionHandler) HandleGenerateFinancialReport(ctx *fiber.Ctx) error {
	return h.aggregate(ctx, "generate_report", true, func(c context.Context, userID int64, from, to *time.Time) (interface{}, error) {
		report, err := h.transactionService.GenerateFinancialReport(c, userID, from, to)
		if err != nil {
			return nil, err
		}
		return transaction.NewFinancialReportResponse(report), nil
	})
}

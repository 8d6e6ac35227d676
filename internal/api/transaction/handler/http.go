package transactionHandler

import (
	transactionService "FinanceTracker/internal/api/transaction/service"
	"FinanceTracker/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TransactionHandler struct {
	log                *logrus.Logger
	transactionService transactionService.ITransactionService
	validator          *validator.Validate
	middleware         middleware.Middleware
}

func New(
	log *logrus.Logger,
	ts transactionService.ITransactionService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *TransactionHandler {
	return &TransactionHandler{
		log:                log,
		transactionService: ts,
		validator:          validate,
		middleware:         middleware,
	}
}

func (h *TransactionHandler) Start(srv fiber.Router) {
	transactions := srv.Group("/transaction", h.middleware.NewTokenMiddleware)
	transactions.Get("", h.HandleGetAll)
	transactions.Get("/balance", h.HandleGetBalance)
	transactions.Get("/income", h.HandleGetTotalIncome)
	transactions.Get("/total-expenses", h.HandleGetTotalExpenses)
	transactions.Get("/month-expenses", h.HandleGetMonthExpense)
	transactions.Get("/analyze", h.HandleAnalyzeExpensesByCategory)
	transactions.Get("/report", h.HandleGenerateFinancialReport)
	transactions.Get("/:id", h.HandleGetByID)
	transactions.Post("", h.HandleCreate)
	transactions.Patch("/:id", h.HandleUpdate)
	transactions.Delete("/:id", h.HandleDelete)
}

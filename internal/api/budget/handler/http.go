package budgetHandler

import (
	budgetService "FinanceTracker/internal/api/budget/service"
	"FinanceTracker/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BudgetHandler struct {
	log           *logrus.Logger
	budgetService budgetService.IBudgetService
	validator     *validator.Validate
	middleware    middleware.Middleware
}

func New(
	log *logrus.Logger,
	bs budgetService.IBudgetService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		budgetService: bs,
		validator:     validate,
		middleware:    middleware,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budgets := srv.Group("/budget", h.middleware.NewTokenMiddleware)
	budgets.Get("", h.HandleGetAll)
	budgets.Get("/status/:categoryId", h.HandleCheckBudget)
	budgets.Get("/:id", h.HandleGetByID)
	budgets.Post("", h.HandleCreate)
	budgets.Patch("/:id/deactivate", h.HandleDeactivate)
	budgets.Patch("/:id", h.HandleUpdate)
	budgets.Delete("/:id", h.HandleDelete)
}

package goalHandler

import (
	goalService "FinanceTracker/internal/api/goal/service"
	"FinanceTracker/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GoalHandler struct {
	log         *logrus.Logger
	goalService goalService.IGoalService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	gs goalService.IGoalService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *GoalHandler {
	return &GoalHandler{
		log:         log,
		goalService: gs,
		validator:   validate,
		middleware:  middleware,
	}
}

func (h *GoalHandler) Start(srv fiber.Router) {
	goals := srv.Group("/goal", h.middleware.NewTokenMiddleware)
	goals.Get("", h.HandleGetAll)
	goals.Get("/status/:categoryId", h.HandleCheckGoal)
	goals.Get("/:id", h.HandleGetByID)
	goals.Post("", h.HandleCreate)
	goals.Patch("/:id/deactivate", h.HandleDeactivate)
	goals.Patch("/:id", h.HandleUpdate)
	goals.Delete("/:id", h.HandleDelete)
}

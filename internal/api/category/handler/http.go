package categoryHandler

import (
	categoryService "FinanceTracker/internal/api/category/service"
	"FinanceTracker/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	log             *logrus.Logger
	categoryService categoryService.ICategoryService
	validator       *validator.Validate
	middleware      middleware.Middleware
}

func New(
	log *logrus.Logger,
	cs categoryService.ICategoryService,
	validate *validator.Validate,
	middleware middleware.Middleware,
) *CategoryHandler {
	return &CategoryHandler{
		log:             log,
		categoryService: cs,
		validator:       validate,
		middleware:      middleware,
	}
}

func (h *CategoryHandler) Start(srv fiber.Router) {
	categories := srv.Group("/category", h.middleware.NewTokenMiddleware)
	categories.Get("", h.HandleGetAll)
	categories.Get("/:id", h.HandleGetByID)
	categories.Post("", h.middleware.NewAdminMiddleware, h.HandleCreate)
	categories.Patch("/:id", h.middleware.NewAdminMiddleware, h.HandleUpdate)
	categories.Delete("/:id", h.middleware.NewAdminMiddleware, h.HandleDelete)
}

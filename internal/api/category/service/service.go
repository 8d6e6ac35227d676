package categoryService

import (
	budgetRepository "FinanceTracker/internal/api/budget/repository"
	"FinanceTracker/internal/api/category"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"FinanceTracker/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ICategoryService interface {
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (entity.Category, error)
	Create(ctx context.Context, req category.CreateCategoryRequest) (entity.Category, error)
	Update(ctx context.Context, id int64, req category.UpdateCategoryRequest) (entity.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type categoryService struct {
	log                   *logrus.Logger
	categoryRepository    categoryRepository.Repository
	transactionRepository transactionRepository.Repository
	budgetRepository      budgetRepository.Repository
	goalRepository        goalRepository.Repository
	utils                 utils.IUtils
}

func NewCategoryService(
	log *logrus.Logger,
	cr categoryRepository.Repository,
	tr transactionRepository.Repository,
	br budgetRepository.Repository,
	gr goalRepository.Repository,
	utils utils.IUtils,
) ICategoryService {
	return &categoryService{
		log:                   log,
		categoryRepository:    cr,
		transactionRepository: tr,
		budgetRepository:      br,
		goalRepository:        gr,
		utils:                 utils,
	}
}

package goalService

import (
	categoryRepository "FinanceTracker/internal/api/category/repository"
	"FinanceTracker/internal/api/goal"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	"FinanceTracker/internal/entity"
	"FinanceTracker/internal/notification"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IGoalService interface {
	GetAll(ctx context.Context, caller entity.UserLoginData) ([]entity.Goal, error)
	GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Goal, error)
	Create(ctx context.Context, caller entity.UserLoginData, req goal.CreateGoalRequest) (entity.Goal, error)
	Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.GoalPatch) (entity.Goal, error)
	Deactivate(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Goal, error)
	Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error)

	CheckGoal(ctx context.Context, caller entity.UserLoginData, categoryID int64) (entity.GoalStatus, error)
	IsGoalReached(ctx context.Context, userID int64, categoryID int64, g entity.Goal) (bool, error)
}

type goalService struct {
	log                   *logrus.Logger
	goalRepository        goalRepository.Repository
	transactionRepository transactionRepository.Repository
	categoryRepository    categoryRepository.Repository
	notifier              notification.Notifier
	now                   func() time.Time
}

func NewGoalService(
	log *logrus.Logger,
	gr goalRepository.Repository,
	tr transactionRepository.Repository,
	cr categoryRepository.Repository,
	notifier notification.Notifier,
) IGoalService {
	return &goalService{
		log:                   log,
		goalRepository:        gr,
		transactionRepository: tr,
		categoryRepository:    cr,
		notifier:              notifier,
		now:                   time.Now,
	}
}

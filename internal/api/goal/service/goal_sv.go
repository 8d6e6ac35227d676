package goalService

import (
	"FinanceTracker/internal/api/category"
	"FinanceTracker/internal/api/goal"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

func (s *goalService) GetAll(ctx context.Context, caller entity.UserLoginData) ([]entity.Goal, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin() {
		return repo.Goals.GetAll(ctx)
	}
	return repo.Goals.GetAllByUserID(ctx, caller.ID)
}

func (s *goalService) GetByID(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Goal, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return entity.Goal{}, err
	}
	return s.owned(ctx, repo, caller, id)
}

// Create stores a new active goal and retires the caller's previous active
// goal for the same category.
func (s *goalService) Create(ctx context.Context, caller entity.UserLoginData, req goal.CreateGoalRequest) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	newGoal := entity.Goal{
		UserID:       caller.ID,
		CategoryID:   req.CategoryID,
		TargetAmount: req.TargetAmount,
		Active:       true,
	}
	if err := newGoal.Validate(); err != nil {
		return entity.Goal{}, err
	}
	if err := s.ensureCategory(ctx, newGoal.CategoryID); err != nil {
		return entity.Goal{}, err
	}

	repo, err := s.client(ctx, true)
	if err != nil {
		return entity.Goal{}, err
	}
	defer repo.Rollback()

	if _, err := repo.Goals.DeactivateActiveByUserIDAndCategoryID(ctx, newGoal.UserID, newGoal.CategoryID); err != nil {
		return entity.Goal{}, err
	}

	created, err := repo.Goals.Create(ctx, newGoal)
	if err != nil {
		return entity.Goal{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit goal creation")
		return entity.Goal{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"goal_id":    created.ID,
	}).Info("Goal created")

	return created, nil
}

func (s *goalService) Update(ctx context.Context, caller entity.UserLoginData, id int64, patch entity.GoalPatch) (entity.Goal, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if patch.CategoryID != nil {
		if err := s.ensureCategory(ctx, *patch.CategoryID); err != nil {
			return entity.Goal{}, err
		}
	}

	repo, err := s.client(ctx, true)
	if err != nil {
		return entity.Goal{}, err
	}
	defer repo.Rollback()

	existing, err := s.owned(ctx, repo, caller, id)
	if err != nil {
		return entity.Goal{}, err
	}

	patch.Apply(&existing)
	if err := existing.Validate(); err != nil {
		return entity.Goal{}, err
	}

	updated, err := repo.Goals.Update(ctx, existing)
	if err != nil {
		return entity.Goal{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit goal update")
		return entity.Goal{}, err
	}

	return updated, nil
}

func (s *goalService) Deactivate(ctx context.Context, caller entity.UserLoginData, id int64) (entity.Goal, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return entity.Goal{}, err
	}

	existing, err := s.owned(ctx, repo, caller, id)
	if err != nil {
		return entity.Goal{}, err
	}
	if !existing.Active {
		return existing, nil
	}

	found, err := repo.Goals.DeactivateByID(ctx, id)
	if err != nil {
		return entity.Goal{}, err
	}
	if !found {
		return entity.Goal{}, goal.ErrGoalNotFound
	}

	return repo.Goals.GetByID(ctx, id)
}

func (s *goalService) Delete(ctx context.Context, caller entity.UserLoginData, id int64) (bool, error) {
	repo, err := s.client(ctx, false)
	if err != nil {
		return false, err
	}

	if _, err := s.owned(ctx, repo, caller, id); err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return false, nil
		}
		return false, err
	}

	return repo.Goals.DeleteByID(ctx, id)
}

func (s *goalService) client(ctx context.Context, tx bool) (goalRepository.Client, error) {
	repo, err := s.goalRepository.NewClient(tx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return goalRepository.Client{}, err
	}
	return repo, nil
}

func (s *goalService) owned(ctx context.Context, repo goalRepository.Client, caller entity.UserLoginData, id int64) (entity.Goal, error) {
	found, err := repo.Goals.GetByID(ctx, id)
	if err != nil {
		return entity.Goal{}, err
	}
	if !caller.CanAccess(found.UserID) {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"user_id":    caller.ID,
			"goal_id":    id,
		}).Warn("Goal belongs to another user")
		return entity.Goal{}, goal.ErrGoalNotOwned
	}
	return found, nil
}

func (s *goalService) ensureCategory(ctx context.Context, categoryID int64) error {
	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return goal.ErrUnknownCategory
		}
		return err
	}
	return nil
}

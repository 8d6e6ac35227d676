package authService

import (
	"FinanceTracker/internal/api/auth"
	"FinanceTracker/internal/entity"
	contextPkg "FinanceTracker/pkg/context"
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) GetAll(c context.Context, caller entity.UserLoginData) ([]entity.User, error) {
	requestID := contextPkg.GetRequestID(c)

	if !caller.IsAdmin() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    caller.ID,
		}).Warn("Non-admin tried to list users")
		return nil, auth.ErrUserAccessDenied
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Users.GetAll(c)
}

func (s *userDomainImpl) GetByID(c context.Context, caller entity.UserLoginData, id int64) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)

	if !caller.CanAccess(id) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    caller.ID,
			"target_id":  id,
		}).Warn("User access denied")
		return entity.User{}, auth.ErrUserAccessDenied
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	return repo.Users.GetByID(c, id)
}

func (s *userDomainImpl) Update(c context.Context, caller entity.UserLoginData, id int64, req auth.UpdateUserRequest) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)

	if !caller.CanAccess(id) {
		return entity.User{}, auth.ErrUserAccessDenied
	}
	if req.Role != nil && !caller.IsAdmin() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    caller.ID,
		}).Warn("Non-admin tried to change a role")
		return entity.User{}, auth.ErrRoleChangeForbidden
	}

	patch, err := s.makePatch(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return entity.User{}, err
	}

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}
	defer repo.Rollback()

	user, err := repo.Users.GetByID(c, id)
	if err != nil {
		return entity.User{}, err
	}

	previousRole := user.Role
	patch.Apply(&user)

	updated, err := repo.Users.Update(c, user)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to update user")
		return entity.User{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit user update")
		return entity.User{}, err
	}

	if updated.Role != previousRole {
		if err := s.revokeTokens(c, updated.ID); err != nil {
			return entity.User{}, err
		}
	}

	return updated, nil
}

func (s *userDomainImpl) Delete(c context.Context, caller entity.UserLoginData, id int64) (bool, error) {
	requestID := contextPkg.GetRequestID(c)

	if !caller.CanAccess(id) {
		return false, auth.ErrUserAccessDenied
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return false, err
	}

	deleted, err := repo.Users.DeleteByID(c, id)
	if err != nil {
		return false, err
	}
	if deleted {
		if err := s.revokeTokens(c, id); err != nil {
			return false, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    id,
		"deleted":    deleted,
	}).Info("Delete user")

	return deleted, nil
}

// revokeTokens logs the user out everywhere so that no token keeps a role or
// an account that no longer exists.
func (s *userDomainImpl) revokeTokens(c context.Context, userID int64) error {
	if err := s.redisServer.RevokeUserTokens(c, userID, s.tokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to revoke user tokens")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(c),
		"user_id":    userID,
	}).Info("User tokens revoked")
	return nil
}

func (s *userDomainImpl) makePatch(req auth.UpdateUserRequest) (entity.UserPatch, error) {
	patch := entity.UserPatch{
		Username: req.Username,
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		patch.Email = &email
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		patch.Role = &role
	}
	if req.Password != nil {
		hashed, err := s.bcryptUtils.HashPassword(*req.Password)
		if err != nil {
			return entity.UserPatch{}, err
		}
		patch.Password = &hashed
	}

	return patch, nil
}

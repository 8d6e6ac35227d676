package authService

import (
	"FinanceTracker/internal/api/auth"
	authRepository "FinanceTracker/internal/api/auth/repository"
	"FinanceTracker/internal/entity"
	"FinanceTracker/pkg/bcrypt"
	"FinanceTracker/pkg/redis"
	"FinanceTracker/pkg/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	User() UserDomain
	Auth() AuthDomain
}

type UserDomain interface {
	GetAll(c context.Context, caller entity.UserLoginData) ([]entity.User, error)
	GetByID(c context.Context, caller entity.UserLoginData, id int64) (entity.User, error)
	Update(c context.Context, caller entity.UserLoginData, id int64, req auth.UpdateUserRequest) (entity.User, error)
	Delete(c context.Context, caller entity.UserLoginData, id int64) (bool, error)
}

type AuthDomain interface {
	Register(c context.Context, req auth.CreateUserRequest) (entity.User, error)
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	Logout(c context.Context, user entity.UserLoginData) error
}

type Options struct {
	JWTSecret     string
	JWTTTL        time.Duration
	AdminUsername string
}

type authService struct {
	userDomain UserDomain
	authDomain AuthDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

type userDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	tokenTTL    time.Duration
}

type authDomainImpl struct {
	log         *logrus.Logger
	repo        authRepository.Repository
	redisServer redis.IRedis
	bcryptUtils bcrypt.IBcrypt
	utils       utils.IUtils
	opts        Options
	now         func() time.Time
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	redisServer redis.IRedis,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
	opts Options,
) AuthService {
	return &authService{
		userDomain: &userDomainImpl{
			log:         log,
			repo:        authRepo,
			redisServer: redisServer,
			bcryptUtils: bcryptUtils,
			tokenTTL:    opts.JWTTTL,
		},
		authDomain: &authDomainImpl{
			log:         log,
			repo:        authRepo,
			redisServer: redisServer,
			bcryptUtils: bcryptUtils,
			utils:       utils,
			opts:        opts,
			now:         time.Now,
		},
	}
}

package config

import (
	"FinanceTracker/database/postgres"
	authHandler "FinanceTracker/internal/api/auth/handler"
	authRepository "FinanceTracker/internal/api/auth/repository"
	authService "FinanceTracker/internal/api/auth/service"
	budgetHandler "FinanceTracker/internal/api/budget/handler"
	budgetRepository "FinanceTracker/internal/api/budget/repository"
	budgetService "FinanceTracker/internal/api/budget/service"
	categoryHandler "FinanceTracker/internal/api/category/handler"
	categoryRepository "FinanceTracker/internal/api/category/repository"
	categoryService "FinanceTracker/internal/api/category/service"
	goalHandler "FinanceTracker/internal/api/goal/handler"
	goalRepository "FinanceTracker/internal/api/goal/repository"
	goalService "FinanceTracker/internal/api/goal/service"
	transactionHandler "FinanceTracker/internal/api/transaction/handler"
	transactionRepository "FinanceTracker/internal/api/transaction/repository"
	transactionService "FinanceTracker/internal/api/transaction/service"
	"FinanceTracker/internal/middleware"
	"FinanceTracker/internal/notification"
	"FinanceTracker/pkg/amqp"
	"FinanceTracker/pkg/bcrypt"
	"FinanceTracker/pkg/redis"
	"FinanceTracker/pkg/smtp"
	"FinanceTracker/pkg/utils"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	cfg         *Config
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	publisher   amqp.IPublisher
	mail        *notification.EmailNotifier
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.cfg.Storage == StoragePostgres && server.db == nil {
		return nil, fmt.Errorf("database is required for %s storage", StoragePostgres)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithConfig(cfg *Config) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to postgres unless the configured storage is memory.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be set before database")
		}
		if s.cfg.Storage == StorageMemory {
			return nil
		}

		db, err := postgres.New(s.cfg.DBDSN, s.cfg.DBMaxOpenConns)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithPublisher(publisher amqp.IPublisher) ServerOption {
	return func(s *Server) error {
		s.publisher = publisher
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.cfg == nil {
			return fmt.Errorf("logger and config must be initialized before middleware")
		}
		if s.redisServer == nil {
			s.redisServer = redis.NewMemory()
		}
		s.middleware = middleware.New(s.log, s.redisServer, middleware.Config{
			AccessTokenSecret: s.cfg.JWTSecret,
			RateLimit:         s.cfg.RateLimit,
			RateBurst:         s.cfg.RateBurst,
		})
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

// DB is nil when the server runs on in-memory storage.
func (s *Server) DB() *sqlx.DB {
	return s.db
}

type repositories struct {
	users        authRepository.Repository
	categories   categoryRepository.Repository
	transactions transactionRepository.Repository
	budgets      budgetRepository.Repository
	goals        goalRepository.Repository
}

func (s *Server) repositories() repositories {
	if s.db == nil {
		s.log.Warn("Using in-memory storage, data is lost on restart")
		return repositories{
			users:        authRepository.NewMemory(s.log),
			categories:   categoryRepository.NewMemory(s.log),
			transactions: transactionRepository.NewMemory(s.log),
			budgets:      budgetRepository.NewMemory(s.log),
			goals:        goalRepository.NewMemory(s.log),
		}
	}

	return repositories{
		users:        authRepository.New(s.db, s.log),
		categories:   categoryRepository.New(s.db, s.log),
		transactions: transactionRepository.New(s.db, s.log),
		budgets:      budgetRepository.New(s.db, s.log),
		goals:        goalRepository.New(s.db, s.log),
	}
}

func (s *Server) notifier() notification.Notifier {
	notifiers := []notification.Notifier{notification.NewLog(s.log)}
	if s.smtpMailer != nil {
		s.mail = notification.NewEmail(s.log, s.smtpMailer)
		notifiers = append(notifiers, s.mail)
	}
	if s.publisher != nil {
		notifiers = append(notifiers, notification.NewBroker(s.publisher))
	}
	return notification.Multi(notifiers...)
}

func (s *Server) RegisterHandler() {
	if s.utils == nil {
		s.utils = utils.New()
	}
	if s.bcryptUtils == nil {
		s.bcryptUtils = bcrypt.New()
	}

	repos := s.repositories()
	notifier := s.notifier()

	// Auth Domain
	authServices := authService.New(s.log, repos.users, s.redisServer, s.bcryptUtils, s.utils, authService.Options{
		JWTSecret:     s.cfg.JWTSecret,
		JWTTTL:        s.cfg.JWTTTL,
		AdminUsername: s.cfg.AdminUsername,
	})
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Category
	categoryServices := categoryService.NewCategoryService(s.log, repos.categories, repos.transactions, repos.budgets, repos.goals, s.utils)
	categoryHandlers := categoryHandler.New(s.log, categoryServices, s.validator, s.middleware)

	// Budget and Goal
	budgetServices := budgetService.NewBudgetService(s.log, repos.budgets, repos.transactions, repos.categories, notifier)
	budgetHandlers := budgetHandler.New(s.log, budgetServices, s.validator, s.middleware)

	goalServices := goalService.NewGoalService(s.log, repos.goals, repos.transactions, repos.categories, notifier)
	goalHandlers := goalHandler.New(s.log, goalServices, s.validator, s.middleware)

	// Transaction
	transactionServices := transactionService.NewTransactionService(s.log, repos.transactions, repos.categories, budgetServices, goalServices)
	transactionHandlers := transactionHandler.New(s.log, transactionServices, s.validator, s.middleware)

	s.handlers = append(s.handlers, authHandlers, categoryHandlers, transactionHandlers, budgetHandlers, goalHandlers)

	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)
	s.setupHealthCheck()

	router := s.engine.Group("/api")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	return s.engine.Listen(fmt.Sprintf(":%s", s.cfg.AppPort))
}

// Shutdown stops accepting requests, then closes every external connection.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http: %w", err))
	}
	if s.mail != nil {
		if err := s.mail.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain email: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close amqp: %w", err))
		}
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

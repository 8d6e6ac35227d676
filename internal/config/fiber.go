package config

import (
	"FinanceTracker/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	errHandler := handlerUtil.New(logger)

	app := fiber.New(
		fiber.Config{
			AppName:          "FinanceTracker",
			BodyLimit:        1 * 1024 * 1024,
			DisableKeepalive: false,
			StrictRouting:    true,
			CaseSensitive:    true,
			JSONEncoder:      jsoniter.Marshal,
			JSONDecoder:      jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				return errHandler.Handle(c, "unknown", err, c.Path(), "fiber")
			},
		})

	return app
}

package middleware

import (
	"log"
	"time"

	"learnhub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware возвращает middleware для логирования запросов
func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Передаем управление следующему обработчику
		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()
		path := c.Path()
		latency := time.Since(start)
		ip := c.IP()

		statusColor := utils.GetStatusColor(status)
		methodColor := utils.GetMethodColor(method)
		resetColor := "\033[0m"

		logger.Printf("%s %s%s%s %s %s%d%s %s",
			ip,
			methodColor, method, resetColor,
			path,
			statusColor, status, resetColor,
			latency,
		)

		return err
	}
}

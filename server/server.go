// Package server exposes user bundles and monthly statistics over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ggoeuh/DAL-sub000/internal/config"
	"github.com/ggoeuh/DAL-sub000/internal/models"
	"github.com/ggoeuh/DAL-sub000/internal/timeutil"
	"github.com/ggoeuh/DAL-sub000/schedule"
	"github.com/ggoeuh/DAL-sub000/stats"
	"github.com/ggoeuh/DAL-sub000/store"
)

const shutdownTimeout = 5 * time.Second

// Server serves the HTTP API.
type Server struct {
	app   *fiber.App
	saver *store.Saver
	now   func() time.Time
}

// New builds the API on top of saver.
func New(saver *store.Saver) *Server {
	s := &Server{
		saver: saver,
		now:   time.Now,
	}

	app := fiber.New(fiber.Config{
		AppName:               "dal",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
		Output: config.Stderr,
	}))

	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", s.listUsers)
	users.Get("/:id/bundle", s.getBundle)
	users.Put("/:id/bundle", s.putBundle)
	users.Get("/:id/stats", s.getStats)

	s.app = app

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on port until ctx is done.
func (s *Server) Run(ctx context.Context, port int) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.app.Listen(fmt.Sprintf(":%d", port))
	}()

	slog.Info("server started", slog.Int("port", port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	return s.app.ShutdownWithTimeout(shutdownTimeout)
}

func userID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "user id is required")
	}

	return id, nil
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users, err := s.saver.Gateway().ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	if users == nil {
		users = []string{}
	}

	return c.JSON(users)
}

func (s *Server) load(c *fiber.Ctx) (models.Bundle, error) {
	id, err := userID(c)
	if err != nil {
		return models.Bundle{}, err
	}

	return s.saver.Gateway().Load(c.UserContext(), id)
}

func (s *Server) getBundle(c *fiber.Ctx) error {
	b, err := s.load(c)
	if err != nil {
		return err
	}

	return c.JSON(b)
}

func (s *Server) putBundle(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	b, report, err := models.DecodeBundle(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(store.Result{
			Error: "invalid bundle: " + err.Error(),
		})
	}

	if err := schedule.ValidateBundle(&b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(store.Result{
			Error: err.Error(),
		})
	}

	if !report.Clean() {
		slog.Warn(
			"uploaded bundle was repaired",
			slog.String("user", id),
			slog.Any("coerced", report.Coerced),
			slog.Any("dropped", report.Dropped),
		)
	}

	res := s.saver.Save(c.UserContext(), id, b)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}

	return c.JSON(res)
}

func (s *Server) getStats(c *fiber.Ctx) error {
	month := c.Query("month", timeutil.CurrentMonth(s.now()))
	if !timeutil.ValidMonth(month) {
		return fiber.NewError(
			fiber.StatusBadRequest,
			fmt.Sprintf("invalid month %q: use yyyy-MM", month),
		)
	}

	b, err := s.load(c)
	if err != nil {
		return err
	}

	return c.JSON(stats.Compute(&b, month))
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	if code == fiber.StatusInternalServerError {
		slog.Error(
			"request failed",
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// Package httpapi wires the HTTP handlers into the Fiber app.
package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/fms-faisal/DayMate/internal/chat"
	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/plan"
	"github.com/fms-faisal/DayMate/internal/prefs"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
)

var validate = validator.New()

// PlanService generates daily plans.
type PlanService interface {
	Generate(ctx context.Context, req plan.Request) (plan.Response, error)
}

// WeatherService serves the direct weather endpoint.
type WeatherService interface {
	CurrentByCity(ctx context.Context, city string) (weather.Data, error)
}

// NewsService serves the direct news endpoint.
type NewsService interface {
	Local(ctx context.Context, city string, pageSize int) ([]news.Article, error)
}

// TrafficService serves the direct traffic endpoint.
type TrafficService interface {
	Conditions(ctx context.Context, city string, lat, lon *float64) (traffic.Report, error)
}

// ChatService runs the refinement loop.
type ChatService interface {
	FollowUp(ctx context.Context, req chat.FollowUpRequest) (chat.FollowUpResponse, error)
	Get(id string) (chat.Conversation, error)
	Persist(ctx context.Context, id string) error
}

// PrefsService loads and saves reconciled preferences.
type PrefsService interface {
	Load(ctx context.Context, userID string) (prefs.Preferences, error)
	Save(ctx context.Context, userID string, p prefs.Preferences) (prefs.Preferences, error)
}

// Deps bundles the services the routes need.
type Deps struct {
	Plan    PlanService
	Weather WeatherService
	News    NewsService
	Traffic TrafficService
	Chat    ChatService
	Prefs   PrefsService
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Post("/plan", func(c *fiber.Ctx) error {
		var req plan.Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp, err := deps.Plan.Generate(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, plan.ErrNoLocation) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate plan")
		}

		return c.JSON(resp)
	})

	v1.Get("/weather/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")

		data, err := deps.Weather.CurrentByCity(c.UserContext(), city)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(data)
	})

	v1.Get("/news/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")

		articles, err := deps.News.Local(c.UserContext(), city, news.DefaultPageSize)
		// News is never a hard failure; degraded results still ship with
		// the message attached.
		resp := fiber.Map{
			"articles": articles,
			"error":    err != nil,
		}
		if err != nil {
			resp["message"] = err.Error()
		}
		return c.JSON(resp)
	})

	v1.Get("/traffic/:city", func(c *fiber.Ctx) error {
		city := c.Params("city")

		report, err := deps.Traffic.Conditions(c.UserContext(), city, nil, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(report)
	})

	v1.Post("/chat", func(c *fiber.Ctx) error {
		var req chat.FollowUpRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		resp, err := deps.Chat.FollowUp(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, chat.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "conversation not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to process chat message")
		}
		return c.JSON(resp)
	})

	v1.Get("/conversations/:id", func(c *fiber.Ctx) error {
		conv, err := deps.Chat.Get(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "conversation not found")
		}
		return c.JSON(conv)
	})

	v1.Post("/conversations/:id/save", func(c *fiber.Ctx) error {
		err := deps.Chat.Persist(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, chat.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "conversation not found")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
		}
		return c.JSON(fiber.Map{"status": "saved"})
	})

	v1.Get("/users/:id/preferences", func(c *fiber.Ctx) error {
		p, err := deps.Prefs.Load(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, prefs.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no preferences stored for user")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load preferences")
		}
		return c.JSON(p)
	})

	v1.Put("/users/:id/preferences", func(c *fiber.Ctx) error {
		var p prefs.Preferences
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		saved, err := deps.Prefs.Save(c.UserContext(), c.Params("id"), p)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save preferences")
		}
		return c.JSON(saved)
	})
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fms-faisal/DayMate/internal/ai"
	httpapi "github.com/fms-faisal/DayMate/internal/api/http"
	"github.com/fms-faisal/DayMate/internal/chat"
	"github.com/fms-faisal/DayMate/internal/config"
	"github.com/fms-faisal/DayMate/internal/geo"
	"github.com/fms-faisal/DayMate/internal/news"
	"github.com/fms-faisal/DayMate/internal/plan"
	"github.com/fms-faisal/DayMate/internal/prefs"
	"github.com/fms-faisal/DayMate/internal/scheduler"
	"github.com/fms-faisal/DayMate/internal/traffic"
	"github.com/fms-faisal/DayMate/internal/weather"
	"github.com/fms-faisal/DayMate/internal/weather/providers"
)

func main() {
	// Load configuration (reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Geocoding with a long-lived cache; coordinates for a city do not move.
	resolver := geo.NewResolver(httpClient, cfg.GoogleMapsAPIKey, cfg.GeoCacheTTL)

	// Weather providers in priority order. Open-Meteo needs no key and is
	// always available; OpenWeather joins when a key is configured.
	provs := []weather.Provider{providers.NewOpenMeteoProvider(httpClient)}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	weatherService := weather.NewService(resolver, provs)

	newsClient := news.NewClient(httpClient, cfg.NewsAPIKey)
	trafficService := traffic.NewService(httpClient, cfg.TomTomAPIKey, resolver, newsClient, cfg.TrafficCacheTTL)

	// Gemini is optional; without a key every plan uses the rule-based
	// fallback and chat answers with the canned apology.
	var generator ai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("failed to init gemini client: %v", err)
		}
		defer gemini.Close()
		generator = gemini
	} else {
		log.Println("INFO: GEMINI_API_KEY not set; plans fall back to rule-based generation")
	}
	planner := ai.NewPlanner(generator)

	planService := plan.NewService(weatherService, newsClient, trafficService, planner)

	// Preferences: local file store always, MongoDB reconciliation when a
	// URI is configured.
	fileStore, err := prefs.NewFileStore(cfg.PrefsPath)
	if err != nil {
		log.Fatalf("failed to open preferences store: %v", err)
	}

	var remotePrefs prefs.Store
	var durableChats chat.DurableStore
	if cfg.MongoURI != "" {
		client, err := prefs.Connect(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Printf("WARN: mongo unavailable, running local-only: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					log.Printf("error disconnecting mongo: %v", err)
				}
			}()
			db := client.Database(cfg.MongoDatabase)
			remotePrefs = prefs.NewMongoStore(db)
			durableChats = chat.NewMongoStore(db)
		}
	}
	prefsService := prefs.NewReconciler(fileStore, remotePrefs)

	chatService := chat.NewService(chat.NewMemoryStore(), durableChats, planner)

	// Warm-cache scheduler for the configured cities.
	sched := scheduler.New(cfg.WarmCities, cfg.WarmInterval, planService,
		resolver.Cache(), trafficService.Cache())
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "daymate",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Basic health endpoints
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DayMate API is running",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "daymate",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Plan:    planService,
		Weather: weatherService,
		News:    newsClient,
		Traffic: trafficService,
		Chat:    chatService,
		Prefs:   prefsService,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

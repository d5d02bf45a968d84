package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/catalog"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/config"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/handlers"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/middleware"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/repository"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/services"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/session"
	sessionws "github.com/hhrukbfu-tech/treino-em-casa/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)

	workoutCatalog := catalog.New()

	profileService := services.NewProfileService(profileRepo)
	progressService := services.NewProgressService(historyRepo, profileRepo, badgeRepo, cfg.HistoryDefaultLimit)

	var billingService services.BillingService
	if cfg.BillingEnabled() {
		billingService = services.NewStripeBillingService(cfg.StripeSecretKey, cfg.AppURL)
	} else {
		billingService = services.NewDisabledBillingService()
	}

	sessionHub := sessionws.NewHub()
	go sessionHub.Run()
	sessionManager := session.NewManager(progressService, sessionHub)

	authHandler := handlers.NewAuthHandler(db, userRepo, profileRepo, cfg.JWTSecret)
	catalogHandler := handlers.NewCatalogHandler(workoutCatalog, profileService)
	sessionHandler := handlers.NewSessionHandler(sessionManager, workoutCatalog, profileService)
	progressHandler := handlers.NewProgressHandler(progressService)
	profileHandler := handlers.NewProfileHandler(profileService)
	billingHandler := handlers.NewBillingHandler(billingService, cfg)
	wsHandler := handlers.NewWSHandler(sessionHub, sessionManager, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	workouts := authProtected.Group("/workouts")
	workouts.Get("", catalogHandler.ListWorkouts)
	workouts.Get("/:id", catalogHandler.GetWorkout)

	sessions := authProtected.Group("/session")
	sessions.Post("/start", sessionHandler.StartSession)
	sessions.Post("/advance", sessionHandler.AdvanceSession)
	sessions.Post("/resume", sessionHandler.ResumeSession)
	sessions.Post("/abandon", sessionHandler.AbandonSession)
	sessions.Get("", sessionHandler.GetSessionState)

	users := authProtected.Group("/users")
	users.Get("/profile", profileHandler.GetProfile)
	users.Put("/profile", profileHandler.UpdateProfile)
	users.Get("/progress", progressHandler.GetProgress)

	billing := authProtected.Group("/billing")
	billing.Get("/plans", billingHandler.ListPlans)
	billing.Post("/checkout", billingHandler.CreateCheckout)
	billing.Post("/portal", billingHandler.CreatePortal)

	api.Use("/v1/ws", wsHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(wsHandler.HandleWebSocket))
}

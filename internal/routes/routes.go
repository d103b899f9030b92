package routes

import (
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/config"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/handlers"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/middleware"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	chatws "github.com/TheOmegaWolf/fitness-tracker-backend/internal/websocket"
	"github.com/go-redis/redis/v8"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries the process-wide resources the routes are built from.
// Redis, RateLimiter and Storage may be nil; the features backed by them are
// then skipped or refused.
type Dependencies struct {
	Config      *config.Config
	DB          *pgxpool.Pool
	Redis       redis.Cmdable
	RateLimiter middleware.RequestRateLimiter
	Storage     services.ObjectStorage
	Metrics     *metrics.Manager
	Registry    *prometheus.Registry
	Hub         *chatws.Hub
}

func RegisterRoutes(app *fiber.App, deps Dependencies) error {
	cfg := deps.Config
	db := deps.DB

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	messageRepo := repository.NewChatMessageRepository(db)

	authService := services.NewAuthService(db, userRepo, profileRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db, userRepo, profileRepo)
	profileService := services.NewProfileService(db, userRepo, profileRepo, deps.Storage)
	activityService := services.NewActivityService(db, userRepo, profileRepo, subscriptionRepo, workoutRepo, activityRepo, progressRepo)
	workoutService := services.NewWorkoutService(db, profileRepo, workoutRepo)
	exerciseService := services.NewExerciseService(exerciseRepo)
	nutritionService := services.NewNutritionService(nutritionRepo, cfg.NutritionCacheSizeMB, deps.Metrics)
	intakeService := services.NewIntakeService(db, profileRepo, intakeRepo)
	bookingService := services.NewBookingService(bookingRepo, userRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo)
	chatService := services.NewChatService(userRepo, messageRepo, deps.Hub, deps.Metrics)
	analyticsService := services.NewAnalyticsService(profileRepo, progressRepo, workoutRepo, exerciseRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	activityHandler := handlers.NewActivityHandler(activityService, profileService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	chatHandler := handlers.NewChatHandler(chatService, deps.Hub, cfg.JWTSecret)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	healthHandler := handlers.NewHealthHandler(db, deps.Redis)

	app.Get("/health", healthHandler.Check)
	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(deps.RateLimiter, "register", cfg.LoginRateLimitPerMin, deps.Metrics), authHandler.Register)
	auth.Post("/login", middleware.RateLimit(deps.RateLimiter, "login", cfg.LoginRateLimitPerMin, deps.Metrics), authHandler.Login)
	auth.Get("/me", authRequired, authHandler.Me)

	users := api.Group("/users", authRequired)
	users.Get("", userHandler.ListUsers)
	users.Put("", userHandler.UpdateUser)
	users.Get("/:id", userHandler.GetUser)

	profile := api.Group("/profile", authRequired)
	profile.Get("", profileHandler.GetProfile)
	profile.Put("", profileHandler.SaveProfile)
	profile.Post("/picture", profileHandler.UploadPicture)

	activity := api.Group("/activity", authRequired)
	activity.Get("", activityHandler.GetDashboard)
	activity.Post("", activityHandler.LogPlan)
	activity.Put("", activityHandler.UpdateProfile)
	activity.Post("/steps", activityHandler.LogSteps)

	workouts := api.Group("/workouts", authRequired)
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Post("", workoutHandler.CreateWorkouts)

	exercises := api.Group("/exercises", authRequired)
	exercises.Get("", exerciseHandler.ListExercises)
	exercises.Get("/:id", exerciseHandler.GetExercise)

	nutrition := api.Group("/nutrition", authRequired)
	nutrition.Get("/search", nutritionHandler.Search)
	nutrition.Get("/:id", nutritionHandler.GetItem)

	intake := api.Group("/intake", authRequired)
	intake.Get("", intakeHandler.ListIntakes)
	intake.Post("", intakeHandler.CreateIntake)
	intake.Get("/:id", intakeHandler.GetIntake)
	intake.Delete("/:id", intakeHandler.DeleteIntake)

	bookings := api.Group("/bookings", authRequired)
	bookings.Get("", bookingHandler.ListBookings)
	bookings.Post("", bookingHandler.CreateBooking)

	subscriptions := api.Group("/subscriptions", authRequired)
	subscriptions.Post("", subscriptionHandler.Purchase)
	subscriptions.Get("/:userId", subscriptionHandler.GetSubscription)

	chat := api.Group("/chat", authRequired)
	chat.Post("", chatHandler.HandleAction)
	chat.Post("/messages", chatHandler.SendMessage)

	analytics := api.Group("/analytics", authRequired)
	analytics.Get("", analyticsHandler.GetReport)

	api.Get("/ws", chatHandler.WebSocketAuth, websocket.New(chatHandler.HandleWebSocket))
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/BUSAN-4/front-back/internal/config"
	"github.com/BUSAN-4/front-back/internal/database"
	"github.com/BUSAN-4/front-back/internal/handlers"
	"github.com/BUSAN-4/front-back/internal/middleware"
	"github.com/BUSAN-4/front-back/internal/models"
	"github.com/BUSAN-4/front-back/internal/repository"
	"github.com/BUSAN-4/front-back/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	config.InitLogger()
	slog.Info("Starting application", "version", "1.0.0")

	cfg := config.Load()
	slog.Info("Configuration loaded successfully",
		"server_port", cfg.Server.Port,
		"gin_mode", cfg.Server.Mode,
		"web_db_host", cfg.WebDB.Host,
		"car_db_host", cfg.CarDB.Host,
	)

	webDB, err := database.ConnectWeb(cfg.WebDB)
	if err != nil {
		slog.Error("Failed to connect to application store", "error", err)
		os.Exit(1)
	}
	carDB, err := database.ConnectCar(cfg.CarDB)
	if err != nil {
		slog.Error("Failed to connect to telemetry store", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateWeb(webDB); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.Mode)

	router := setupRouter(cfg, webDB, carDB)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started successfully", "port", cfg.Server.Port)

	waitForShutdown(server)
}

func setupRouter(cfg *config.Config, webDB, carDB *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(webDB)
	vehicleRepo := repository.NewVehicleRepository(webDB)

	jwtService := service.NewJWTService(cfg.JWT)
	userService := service.NewUserService(userRepo, jwtService)
	vehicleService := service.NewVehicleService(vehicleRepo)
	telemetry := service.NewTelemetryReader(carDB)
	safetyService := service.NewSafetyService(vehicleRepo, telemetry)
	detectionService := service.NewDetectionService(carDB, webDB)

	authHandlers := handlers.NewAuthHandlers(userService, jwtService)
	userHandlers := handlers.NewUserHandlers(userService)
	adminHandlers := handlers.NewAdminHandlers(userService)
	vehicleHandlers := handlers.NewVehicleHandlers(vehicleService)
	tripHandlers := handlers.NewTripHandlers(safetyService)
	safetyHandlers := handlers.NewSafetyHandlers(safetyService)
	cityHandlers := handlers.NewCityHandlers(safetyService)
	policeHandlers := handlers.NewPoliceHandlers(detectionService)
	ntsHandlers := handlers.NewNTSHandlers(detectionService)

	jwtMiddleware := middleware.NewJWTMiddleware(jwtService, userService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandlers.Register)
		auth.POST("/login", authHandlers.Login)
		auth.POST("/refresh", authHandlers.RefreshToken)
		auth.POST("/logout", authHandlers.Logout)
		auth.GET("/me", jwtMiddleware.RequireAuth(), authHandlers.Me)
	}

	users := api.Group("/users", jwtMiddleware.RequireAuth())
	{
		users.GET("/profile", userHandlers.GetProfile)
		users.PUT("/profile", userHandlers.UpdateProfile)

		admin := users.Group("", jwtMiddleware.RequireAdminOf(models.OrgSystem))
		{
			admin.GET("", adminHandlers.ListUsers)
			admin.DELETE("/:id", adminHandlers.DeleteUser)
			admin.PUT("/:id/role", adminHandlers.UpdateRole)
		}
	}

	vehicles := api.Group("/vehicles", jwtMiddleware.RequireAuth())
	{
		vehicles.POST("", vehicleHandlers.Register)
		vehicles.GET("", vehicleHandlers.List)
		vehicles.GET("/:id", vehicleHandlers.Get)
		vehicles.PUT("/:id", vehicleHandlers.Update)
		vehicles.DELETE("/:id", vehicleHandlers.Delete)
	}

	trips := api.Group("/trips", jwtMiddleware.RequireAuth(), jwtMiddleware.RequireGeneralRole())
	{
		trips.GET("", tripHandlers.List)
		trips.GET("/scores", safetyHandlers.MonthlyScores)
		trips.GET("/scores/:sessionId", safetyHandlers.ScoreDetail)
		trips.GET("/:sessionId", tripHandlers.Detail)
	}

	city := api.Group("/city", jwtMiddleware.RequireAuth(), jwtMiddleware.RequireAdminOf(models.OrgBusan))
	{
		city.GET("/safety-rate", cityHandlers.SafetyRate)
		city.GET("/stats", cityHandlers.FleetStats)
		city.GET("/best-drivers", cityHandlers.BestDriversByRate)
		city.GET("/best-drivers/score", cityHandlers.BestDriversByScore)
		city.GET("/best-drivers/all", cityHandlers.BestDriversAllMonths)
	}

	police := api.Group("/police", jwtMiddleware.RequireAuth(), jwtMiddleware.RequireAdminOf(models.OrgPolice))
	{
		police.GET("/detections", policeHandlers.List)
		police.GET("/detections/recent", policeHandlers.Recent)
		police.PUT("/detections/:detectionId/result", policeHandlers.UpdateResult)
		police.POST("/detections/:detectionId/resolve", policeHandlers.Resolve)
		police.GET("/stats", policeHandlers.Stats)
		police.GET("/stats/trend", policeHandlers.Trend)
	}

	nts := api.Group("/nts", jwtMiddleware.RequireAuth(), jwtMiddleware.RequireAdminOf(models.OrgNTS))
	{
		nts.GET("/detections", ntsHandlers.List)
		nts.GET("/detections/recent", ntsHandlers.Recent)
		nts.PUT("/detections/:detectionId/result", ntsHandlers.UpdateResult)
		nts.POST("/detections/:detectionId/resolve", ntsHandlers.Resolve)
		nts.GET("/stats", ntsHandlers.Stats)
		nts.GET("/stats/trend", ntsHandlers.Trend)
	}

	return r
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server gracefully stopped")
}

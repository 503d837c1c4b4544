package main

import (
	"log"
	"net/http"

	_ "fitfans/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fitfans/internal/cache"
	"fitfans/internal/classifier"
	"fitfans/internal/config"
	"fitfans/internal/db"
	"fitfans/internal/handler"
	"fitfans/internal/model"
	"fitfans/internal/repository"
	"fitfans/internal/router"
	"fitfans/internal/service"
	"fitfans/internal/storage"
)

// @title FitFans API
// @version 1.0
// @description User profile CRUD and gym-equipment image classification.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploadStore, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	// The model is loaded exactly once and shared read-only for the process
	// lifetime.
	predictor, err := classifier.NewONNXPredictor(cfg.ModelPath, cfg.ONNXLibPath)
	if err != nil {
		log.Fatalf("load classifier model: %v", err)
	}
	defer predictor.Close()

	userRepo := repository.NewUserRepository(gormDB)

	userService := service.NewUserService(userRepo, cacheClient)
	predictionService := service.NewPredictionService(classifier.New(predictor), uploadStore, cacheClient)

	userHandler := handler.NewUserHandler(userService)
	predictHandler := handler.NewPredictHandler(predictionService)

	router.Register(e, userHandler, predictHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

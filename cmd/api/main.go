package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"applyhub/internal/config"
	"applyhub/internal/database"
	"applyhub/internal/middleware"
	"applyhub/internal/modules/application"
	"applyhub/internal/modules/resume"
	"applyhub/internal/razorpay"
	"applyhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	store, err := resume.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	appRepo := repository.NewApplicationRepository(db)
	gateway := razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	appService := application.NewService(appRepo, store, gateway, cfg.RazorpayKeyID, cfg.ApplicationFee, cfg.Currency, log.Printf)
	appHandler := application.NewHandler(appService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	api := r.Group("/api")
	{
		appHandler.RegisterRoutes(api)
	}

	r.Static("/uploads", store.Dir())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/controllers"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/novaposhta"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/routes"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/services"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
)

func main() {
	cfg := config.Load()
	config.InitLogger()

	// Redis is optional: without it sessions live in memory only.
	config.ConnectRedis()

	api := storeapi.NewClient(cfg.StoreAPIBaseURL)
	np := novaposhta.NewClient(cfg.NovaPoshtaAPIURL, cfg.NovaPoshtaAPIKey)

	var media *services.MediaService
	if cfg.CloudinaryCloudName != "" {
		var err error
		media, err = services.NewMediaService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logrus.Fatalf("❌ Failed to initialize Cloudinary: %v", err)
		}
		logrus.Info("✅ Cloudinary service initialized")
	} else {
		logrus.Warn("⚠️ CLOUDINARY_CLOUD_NAME not set, image uploads disabled")
	}

	sessions := session.NewManager(config.RedisClient, cfg.SessionTTL)
	ct := controllers.New(cfg, sessions, api, np, media)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Session(sessions))

	routes.Setup(router, ct)

	logrus.Infof("🚀 Storefront gateway running on http://localhost:%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("❌ Server failed: %v", err)
	}
}

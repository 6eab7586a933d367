package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/latable-app/reservation-backend/config"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/router"
	"github.com/latable-app/reservation-backend/services"
	"github.com/latable-app/reservation-backend/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()

	// Le .env est chargé par config.Load, après l'init du paquet utils :
	// le secret doit donc être repris explicitement ici.
	if cfg.JWTSecret != "" {
		utils.JWTSecret = []byte(cfg.JWTSecret)
	} else if cfg.Environment != "development" {
		utils.ErrorLogger.Fatal("JWT_SECRET must be set outside development")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Plat{},
		&models.Reservation{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed")

	if os.Getenv("GIN_MODE") == "release" || cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	mailer := services.NewMailer(cfg)

	r := router.SetupRouter(db, cfg, mailer)

	utils.InfoLogger.Printf("Listening on port %s (%s)", cfg.Port, cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

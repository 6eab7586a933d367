package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/config"
	"github.com/latable-app/reservation-backend/controllers"
	"github.com/latable-app/reservation-backend/middlewares"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/services"
	"github.com/latable-app/reservation-backend/utils"
)

var startTime = time.Now()

func SetupRouter(db *gorm.DB, cfg *config.Config, mailer *services.Mailer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db)
	menuCtrl := controllers.NewMenuController(db)
	reservationCtrl := controllers.NewReservationController(db, mailer)

	r.GET("/", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "API de Réservation - Serveur en fonctionnement", gin.H{
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":         "/api/auth",
				"menu":         "/api/menu",
				"reservations": "/api/reservations",
				"health":       "/health",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "Serveur en bonne santé", gin.H{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startTime).Seconds(),
			"environment": cfg.Environment,
		})
	})

	api := r.Group("/api")
	api.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// ---------------------------- AUTH ----------------------------
	auth := api.Group("/auth")
	strict := middlewares.NewStrictRateLimiter()
	auth.POST("/register", strict, authCtrl.Register)
	auth.POST("/login", strict, authCtrl.Login)
	auth.GET("/profile", middlewares.AuthMiddleware(db), authCtrl.GetProfile)
	auth.GET("/verify", middlewares.AuthMiddleware(db), authCtrl.VerifyToken)

	// ---------------------------- MENU ----------------------------
	menu := api.Group("/menu")
	menu.GET("", menuCtrl.GetMenu)
	menu.GET("/category/:categorie", menuCtrl.GetMenuByCategory)
	menu.GET("/admin/all", middlewares.AuthMiddleware(db), menuCtrl.GetMenuAdmin)
	menu.POST("", middlewares.AuthMiddleware(db), menuCtrl.CreatePlat)
	menu.PATCH("/:id/availability", middlewares.AuthMiddleware(db), menuCtrl.UpdateAvailability)
	menu.GET("/:id", menuCtrl.GetPlatByID)

	// ------------------------ RESERVATIONS ------------------------
	reservations := api.Group("/reservations")
	// Pas de middleware d'authentification sur la création : le handler
	// n'examine le token qu'après le cas de l'inscription en ligne.
	reservations.POST("", reservationCtrl.CreateReservation)
	reservations.GET("", middlewares.AuthMiddleware(db), reservationCtrl.GetReservations)
	reservations.GET("/available-slots", reservationCtrl.GetAvailableSlots)
	reservations.GET("/events",
		middlewares.WebSocketAuthMiddleware(db),
		middlewares.RequireRole(models.RoleServeur),
		controllers.StaffEventsHandler)
	reservations.PATCH("/:id", middlewares.AuthMiddleware(db), reservationCtrl.UpdateReservation)
	reservations.DELETE("/:id", middlewares.AuthMiddleware(db), reservationCtrl.DeleteReservation)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.JSONResponse{
			Success: false,
			Message: "Route non trouvée",
			Data: gin.H{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			},
		})
	})

	return r
}

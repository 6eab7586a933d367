package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/config"
	"github.com/latable-app/reservation-backend/controllers"
	"github.com/latable-app/reservation-backend/middlewares"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/services"
	"github.com/latable-app/reservation-backend/utils"
)

// setupTestDB ouvre une base SQLite en mémoire dédiée au test, avec la
// même traduction d'erreurs que la base de production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Plat{},
		&models.Reservation{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// setupRouter reproduit les routes de production, sans les limiteurs de
// débit qui fausseraient des tests rapides.
func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	mailer := services.NewMailer(&config.Config{})
	authCtrl := controllers.NewAuthController(db)
	menuCtrl := controllers.NewMenuController(db)
	reservationCtrl := controllers.NewReservationController(db, mailer)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authCtrl.Register)
	auth.POST("/login", authCtrl.Login)
	auth.GET("/profile", middlewares.AuthMiddleware(db), authCtrl.GetProfile)
	auth.GET("/verify", middlewares.AuthMiddleware(db), authCtrl.VerifyToken)

	menu := api.Group("/menu")
	menu.GET("", menuCtrl.GetMenu)
	menu.GET("/category/:categorie", menuCtrl.GetMenuByCategory)
	menu.GET("/admin/all", middlewares.AuthMiddleware(db), menuCtrl.GetMenuAdmin)
	menu.POST("", middlewares.AuthMiddleware(db), menuCtrl.CreatePlat)
	menu.PATCH("/:id/availability", middlewares.AuthMiddleware(db), menuCtrl.UpdateAvailability)
	menu.GET("/:id", menuCtrl.GetPlatByID)

	reservations := api.Group("/reservations")
	reservations.POST("", reservationCtrl.CreateReservation)
	reservations.GET("", middlewares.AuthMiddleware(db), reservationCtrl.GetReservations)
	reservations.GET("/available-slots", reservationCtrl.GetAvailableSlots)
	reservations.PATCH("/:id", middlewares.AuthMiddleware(db), reservationCtrl.UpdateReservation)
	reservations.DELETE("/:id", middlewares.AuthMiddleware(db), reservationCtrl.DeleteReservation)

	return r
}

// doRequest exécute une requête JSON et retourne l'enregistreur de réponse.
func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return resp
}

// seedUser insère un utilisateur directement en base et retourne un token
// valide pour lui.
func seedUser(t *testing.T, db *gorm.DB, email, role string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Nom:      "Dupont",
		Prenom:   "Jean",
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return &user, token
}

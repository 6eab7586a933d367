package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/utils"
)

const (
	ContextUserKey = "currentUser"
	ContextRoleKey = "role"
)

// Erreurs d'authentification distinguables d'une panne en base : seules
// celles-ci valent un 401, tout autre échec de UserFromRequest est un 500.
var (
	ErrMalformedAuthHeader = errors.New("Format d'en-tête Authorization invalide")
	ErrInvalidToken        = errors.New("Token invalide ou expiré")
)

// IsAuthError distingue un refus d'authentification d'une erreur interne.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMalformedAuthHeader) || errors.Is(err, ErrInvalidToken)
}

// AuthMiddleware vérifie le token Bearer puis résout l'utilisateur en base.
// Un token valide dont l'identifiant ne correspond plus à aucun utilisateur
// est rejeté comme n'importe quel token invalide.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := UserFromRequest(db, c)
		if err != nil {
			status := http.StatusUnauthorized
			if !IsAuthError(err) {
				status = http.StatusInternalServerError
			}
			utils.RespondError(c, status, err)
			c.Abort()
			return
		}
		if user == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// UserFromRequest extrait l'identité portée par l'en-tête Authorization.
// Retourne (nil, nil) quand l'en-tête est absent, une erreur quand le token
// est présent mais invalide, expiré ou orphelin.
func UserFromRequest(db *gorm.DB, c *gin.Context) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrMalformedAuthHeader
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorLogger.Printf("token references unknown user id %d", claims.UserID)
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &user, nil
}

// CurrentUser retourne l'utilisateur placé dans le contexte par AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// WebSocketAuthMiddleware authentifie via le paramètre de requête "token",
// les clients websocket ne pouvant pas poser d'en-tête Authorization.
func WebSocketAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserKey, &user)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// RequireRole borne une route à un rôle donné, après authentification.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextRoleKey)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
			c.Abort()
			return
		}
		if userRole != role {
			utils.RespondError(c, http.StatusForbidden, errors.New("Accès refusé"))
			c.Abort()
			return
		}
		c.Next()
	}
}

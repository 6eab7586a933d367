package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/middlewares"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// RegisterRequest est aussi utilisé par la création de compte en ligne au
// moment d'une réservation (voir ReservationController.CreateReservation).
type RegisterRequest struct {
	Nom       string  `json:"nom" binding:"required,min=2,max=100"`
	Prenom    string  `json:"prenom" binding:"required,min=2,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Telephone *string `json:"telephone" binding:"omitempty,max=30"`
	Role      string  `json:"role" binding:"required,oneof=client serveur"`
}

// registerUser hache le mot de passe et insère l'utilisateur. L'unicité de
// l'email est garantie par la contrainte en base : un doublon remonte en
// gorm.ErrDuplicatedKey, jamais en erreur fatale.
func registerUser(db *gorm.DB, req RegisterRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Email:     req.Email,
		Password:  string(hashed),
		Telephone: req.Telephone,
		Role:      req.Role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Register crée un compte puis émet directement un token.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := registerUser(ac.DB, req)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.InfoLogger.Printf("registration rejected, email already in use: %s", req.Email)
			utils.RespondError(c, http.StatusConflict, errors.New("Un utilisateur avec cet email existe déjà"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("new user registered: %s (role=%s)", user.Email, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "Utilisateur créé avec succès", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login authentifie par email et mot de passe. La réponse 401 est la même
// que l'email soit inconnu ou le mot de passe faux.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.InfoLogger.Printf("login failed for %s: unknown email", req.Email)
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Email ou mot de passe incorrect"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.InfoLogger.Printf("login failed for %s: bad password", req.Email)
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Email ou mot de passe incorrect"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Connexion réussie", gin.H{
		"user":  user,
		"token": token,
	})
}

// GetProfile retourne l'utilisateur résolu par le middleware d'authentification.
func (ac *AuthController) GetProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profil récupéré avec succès", gin.H{"user": user})
}

// VerifyToken confirme la validité du token porté par la requête.
func (ac *AuthController) VerifyToken(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Token valide", gin.H{"user": user})
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/events"
	"github.com/latable-app/reservation-backend/middlewares"
	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/services"
	"github.com/latable-app/reservation-backend/utils"
)

type ReservationController struct {
	DB     *gorm.DB
	Mailer *services.Mailer
}

func NewReservationController(db *gorm.DB, mailer *services.Mailer) *ReservationController {
	return &ReservationController{DB: db, Mailer: mailer}
}

// reservationUserRequest est le payload d'inscription en ligne embarqué
// dans une création de réservation. Contrairement à /auth/register, le
// rôle y est optionnel : absent, il vaut client.
type reservationUserRequest struct {
	Nom       string  `json:"nom" binding:"required,min=2,max=100"`
	Prenom    string  `json:"prenom" binding:"required,min=2,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Telephone *string `json:"telephone" binding:"omitempty,max=30"`
	Role      string  `json:"role" binding:"omitempty,oneof=client serveur"`
}

type createReservationRequest struct {
	Horaire        time.Time               `json:"horaire" binding:"required"`
	NombreCouverts int                     `json:"nombreCouverts" binding:"required,gt=0"`
	UserID         *uint                   `json:"userId"`
	User           *reservationUserRequest `json:"user"`
}

// CreateReservation crée une réservation pour un utilisateur résolu dans
// cet ordre, premier critère satisfait gagnant :
//  1. un payload utilisateur complet dans le corps -> inscription en ligne ;
//  2. un userId explicite -> doit être l'appelant authentifié, sinon 401 ;
//  3. un appelant authentifié -> son propre id ;
//  4. sinon 400.
//
// La route n'est pas derrière le middleware d'authentification : le token
// n'est examiné qu'une fois le cas 1 écarté.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	userID, ok := rc.resolveUserID(c, &req)
	if !ok {
		return
	}

	reservation := models.Reservation{
		Horaire:        req.Horaire,
		NombreCouverts: req.NombreCouverts,
		UserID:         userID,
		Status:         models.StatusEnAttente,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var owner models.User
	if err := rc.DB.First(&owner, userID).Error; err == nil {
		reservation.User = &owner
		// Notification best-effort : un échec d'envoi est journalisé dans
		// le mailer et n'affecte jamais la réponse.
		go rc.Mailer.NotifyReservationCreated(&owner, &reservation)
	}

	events.BroadcastReservationCreate(reservation)

	utils.InfoLogger.Printf("reservation %d created for user %d (%d couverts, %s)",
		reservation.ID, userID, reservation.NombreCouverts, reservation.Horaire.Format("2006-01-02 15:04"))
	utils.RespondJSON(c, http.StatusCreated, "Réservation créée avec succès", reservation)
}

// resolveUserID applique la précédence de résolution d'identité. En cas
// d'échec la réponse est déjà écrite et ok vaut false.
func (rc *ReservationController) resolveUserID(c *gin.Context, req *createReservationRequest) (uint, bool) {
	if req.User != nil && req.User.Email != "" {
		role := req.User.Role
		if role == "" {
			role = models.RoleClient
		}
		user, err := registerUser(rc.DB, RegisterRequest{
			Nom:       req.User.Nom,
			Prenom:    req.User.Prenom,
			Email:     req.User.Email,
			Password:  req.User.Password,
			Telephone: req.User.Telephone,
			Role:      role,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.RespondError(c, http.StatusConflict, errors.New("Un utilisateur avec cet email existe déjà"))
				return 0, false
			}
			utils.RespondError(c, http.StatusInternalServerError, err)
			return 0, false
		}
		utils.InfoLogger.Printf("inline registration during reservation: %s", user.Email)
		return user.ID, true
	}

	caller, err := middlewares.UserFromRequest(rc.DB, c)
	if err != nil {
		status := http.StatusUnauthorized
		if !middlewares.IsAuthError(err) {
			status = http.StatusInternalServerError
		}
		utils.RespondError(c, status, err)
		return 0, false
	}

	if req.UserID != nil {
		if caller == nil || caller.ID != *req.UserID {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Vous ne pouvez pas réserver pour un autre utilisateur"))
			return 0, false
		}
		return *req.UserID, true
	}

	if caller != nil {
		return caller.ID, true
	}

	utils.RespondError(c, http.StatusBadRequest, errors.New("Aucun utilisateur fourni"))
	return 0, false
}

// GetReservations retourne toutes les réservations au personnel de salle,
// et seulement les siennes à un client. Tri par date de création décroissante.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
		return
	}

	query := rc.DB.Preload("User").Order("created_at DESC")
	if caller.Role != models.RoleServeur {
		query = query.Where("user_id = ?", caller.ID)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Réservations récupérées avec succès", reservations)
}

type updateReservationRequest struct {
	Horaire        *time.Time `json:"horaire"`
	NombreCouverts *int       `json:"nombreCouverts" binding:"omitempty,gt=0"`
	Status         *string    `json:"status"`
}

// UpdateReservation applique l'un des deux modes de modification, choisis
// par le rôle de l'appelant et non par le contenu de la requête :
//   - client : horaire et/ou nombre de couverts, sur sa propre réservation ;
//     un statut présent dans le corps est ignoré ;
//   - serveur : statut uniquement, restreint aux valeurs du jeu fermé.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Identifiant invalide"))
		return
	}

	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
		return
	}

	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("Réservation non trouvée"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updates := map[string]interface{}{}
	switch caller.Role {
	case models.RoleClient:
		if reservation.UserID != caller.ID {
			utils.RespondError(c, http.StatusForbidden, errors.New("Accès refusé"))
			return
		}
		if req.Horaire != nil {
			updates["horaire"] = *req.Horaire
		}
		if req.NombreCouverts != nil {
			updates["nombre_couverts"] = *req.NombreCouverts
		}
	case models.RoleServeur:
		if req.Status == nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Aucun statut fourni"))
			return
		}
		if !models.IsValidStatus(*req.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Statut invalide"))
			return
		}
		updates["status"] = *req.Status
	default:
		utils.RespondError(c, http.StatusForbidden, errors.New("Accès refusé"))
		return
	}

	if len(updates) > 0 {
		if err := rc.DB.Model(&reservation).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	// Relecture complète : la mise à jour est partielle, la réponse ne l'est pas.
	if err := rc.DB.Preload("User").First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(reservation)
	utils.RespondJSON(c, http.StatusOK, "Réservation modifiée avec succès", reservation)
}

// DeleteReservation supprime définitivement une réservation. Seul le client
// propriétaire y est autorisé, le personnel de salle inclus reçoit un 403.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Identifiant invalide"))
		return
	}

	caller, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Authentification requise"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("Réservation non trouvée"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if caller.Role != models.RoleClient || reservation.UserID != caller.ID {
		utils.RespondError(c, http.StatusForbidden, errors.New("Accès refusé"))
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationDelete(reservation.ID)
	utils.InfoLogger.Printf("reservation %d deleted by user %d", reservation.ID, caller.ID)
	utils.RespondJSON(c, http.StatusOK, "Réservation supprimée", nil)
}

// GetAvailableSlots calcule la capacité restante par créneau pour une
// journée. Lecture seule et purement indicative : rien n'empêche deux
// créations simultanées de dépasser ensemble la capacité d'un créneau.
func (rc *ReservationController) GetAvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Le paramètre date est requis (format YYYY-MM-DD)"))
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Date invalide (format attendu YYYY-MM-DD)"))
		return
	}

	start, end := services.DayBounds(date)

	var reservations []models.Reservation
	if err := rc.DB.Raw(
		"SELECT * FROM reservations WHERE horaire >= ? AND horaire < ?", start, end,
	).Scan(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	slots := services.ComputeAvailableSlots(reservations)
	utils.RespondJSON(c, http.StatusOK, "Créneaux disponibles récupérés avec succès", gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

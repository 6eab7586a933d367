package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/models"
	"github.com/latable-app/reservation-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu liste les plats disponibles, triés par catégorie puis par nom.
func (mc *MenuController) GetMenu(c *gin.Context) {
	var plats []models.Plat
	if err := mc.DB.Where("disponible = ?", true).
		Order("categorie, nom").
		Find(&plats).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu récupéré avec succès", gin.H{
		"plats": plats,
		"total": len(plats),
	})
}

// GetMenuAdmin liste tous les plats, y compris les indisponibles.
func (mc *MenuController) GetMenuAdmin(c *gin.Context) {
	var plats []models.Plat
	if err := mc.DB.Order("categorie, nom").Find(&plats).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu complet récupéré avec succès", gin.H{
		"plats": plats,
		"total": len(plats),
	})
}

// GetMenuByCategory valide la catégorie avant toute requête en base.
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	categorie := c.Param("categorie")
	if !models.IsValidCategorie(categorie) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Catégorie invalide"))
		return
	}

	var plats []models.Plat
	if err := mc.DB.Where("categorie = ? AND disponible = ?", categorie, true).
		Order("nom").
		Find(&plats).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Plats de la catégorie %q récupérés avec succès", categorie), gin.H{
		"plats":     plats,
		"categorie": categorie,
		"total":     len(plats),
	})
}

func (mc *MenuController) GetPlatByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Identifiant invalide"))
		return
	}

	var plat models.Plat
	if err := mc.DB.First(&plat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("Plat non trouvé"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Plat récupéré avec succès", gin.H{"plat": plat})
}

// CreatePlat ajoute un plat au menu. Le nom est unique : un doublon est un
// conflit, pas une erreur interne.
func (mc *MenuController) CreatePlat(c *gin.Context) {
	var req struct {
		Nom         string  `json:"nom" binding:"required,min=2,max=100"`
		Description string  `json:"description" binding:"required,min=10,max=1000"`
		Prix        float64 `json:"prix" binding:"required,gt=0"`
		ImageURL    string  `json:"image_url" binding:"required,url,max=500"`
		Categorie   string  `json:"categorie" binding:"required,oneof=entree plat_principal dessert boisson"`
		Disponible  *bool   `json:"disponible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	disponible := true
	if req.Disponible != nil {
		disponible = *req.Disponible
	}

	plat := models.Plat{
		Nom:         req.Nom,
		Description: req.Description,
		Prix:        req.Prix,
		ImageURL:    req.ImageURL,
		Categorie:   req.Categorie,
		Disponible:  disponible,
	}
	if err := mc.DB.Create(&plat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("Un plat avec ce nom existe déjà"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("plat created: %s (%s)", plat.Nom, plat.Categorie)
	utils.RespondJSON(c, http.StatusCreated, "Plat créé avec succès", gin.H{"plat": plat})
}

// UpdateAvailability bascule la disponibilité d'un plat. L'opération est
// idempotente, seul updated_at avance sur une valeur identique.
func (mc *MenuController) UpdateAvailability(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Identifiant invalide"))
		return
	}

	var req struct {
		Disponible *bool `json:"disponible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var plat models.Plat
	if err := mc.DB.First(&plat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("Plat non trouvé"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := mc.DB.Model(&plat).Update("disponible", *req.Disponible).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Disponibilité du plat mise à jour avec succès", gin.H{"plat": plat})
}

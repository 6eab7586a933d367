package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/latable-app/reservation-backend/models"
)

func seedPlat(t *testing.T, db *gorm.DB, nom, categorie string, disponible bool) *models.Plat {
	t.Helper()
	plat := models.Plat{
		Nom:         nom,
		Description: "Une description suffisamment longue",
		Prix:        12.50,
		ImageURL:    "https://example.com/" + nom + ".jpg",
		Categorie:   categorie,
		Disponible:  disponible,
	}
	if err := db.Create(&plat).Error; err != nil {
		t.Fatalf("failed to seed plat %s: %v", nom, err)
	}
	return &plat
}

func TestGetMenuFiltersUnavailable(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	seedPlat(t, db, "Salade niçoise", models.CategorieEntree, true)
	seedPlat(t, db, "Boeuf bourguignon", models.CategoriePlatPrincipal, true)
	seedPlat(t, db, "Tarte tatin", models.CategorieDessert, false)

	w := doRequest(t, router, "GET", "/api/menu", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])

	// La liste administrateur inclut les plats indisponibles.
	_, token := seedUser(t, db, "staff@example.com", models.RoleServeur)
	w = doRequest(t, router, "GET", "/api/menu/admin/all", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	data = parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])

	// Mais elle exige un token.
	w = doRequest(t, router, "GET", "/api/menu/admin/all", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMenuByCategory(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	seedPlat(t, db, "Salade niçoise", models.CategorieEntree, true)
	seedPlat(t, db, "Boeuf bourguignon", models.CategoriePlatPrincipal, true)

	w := doRequest(t, router, "GET", "/api/menu/category/entree", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	// Une catégorie hors du jeu fermé est rejetée avant toute requête.
	w = doRequest(t, router, "GET", "/api/menu/category/fromage", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlatByID(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	plat := seedPlat(t, db, "Salade niçoise", models.CategorieEntree, true)

	w := doRequest(t, router, "GET", fmt.Sprintf("/api/menu/%d", plat.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/menu/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePlat(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	_, token := seedUser(t, db, "staff@example.com", models.RoleServeur)

	payload := map[string]interface{}{
		"nom":         "Crème brûlée",
		"description": "Crème vanillée caramélisée au chalumeau",
		"prix":        8.90,
		"image_url":   "https://example.com/creme-brulee.jpg",
		"categorie":   "dessert",
	}

	// Sans authentification.
	w := doRequest(t, router, "POST", "/api/menu", payload, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, "POST", "/api/menu", payload, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	plat := data["plat"].(map[string]interface{})
	assert.Equal(t, true, plat["disponible"])

	// Le nom est unique.
	w = doRequest(t, router, "POST", "/api/menu", payload, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Prix négatif rejeté à la validation.
	payload["nom"] = "Autre dessert"
	payload["prix"] = -1.0
	w = doRequest(t, router, "POST", "/api/menu", payload, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePlatUnavailable(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	_, token := seedUser(t, db, "staff@example.com", models.RoleServeur)

	w := doRequest(t, router, "POST", "/api/menu", map[string]interface{}{
		"nom":         "Plat du jour",
		"description": "Préparé selon l'arrivage du marché",
		"prix":        14.00,
		"image_url":   "https://example.com/plat-du-jour.jpg",
		"categorie":   "plat_principal",
		"disponible":  false,
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	// La valeur fournie est stockée telle quelle, même fausse.
	var stored models.Plat
	assert.NoError(t, db.Where("nom = ?", "Plat du jour").First(&stored).Error)
	assert.False(t, stored.Disponible)

	// Et la carte publique ne liste pas le plat.
	w = doRequest(t, router, "GET", "/api/menu", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total"])
}

func TestUpdateAvailabilityIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	_, token := seedUser(t, db, "staff@example.com", models.RoleServeur)
	plat := seedPlat(t, db, "Salade niçoise", models.CategorieEntree, true)

	url := fmt.Sprintf("/api/menu/%d/availability", plat.ID)
	payload := map[string]interface{}{"disponible": false}

	w := doRequest(t, router, "PATCH", url, payload, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var first models.Plat
	assert.NoError(t, db.First(&first, plat.ID).Error)
	assert.False(t, first.Disponible)

	time.Sleep(10 * time.Millisecond)

	// Répéter avec la même valeur laisse l'état observable identique,
	// seul updated_at avance.
	w = doRequest(t, router, "PATCH", url, payload, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var second models.Plat
	assert.NoError(t, db.First(&second, plat.ID).Error)
	assert.False(t, second.Disponible)
	assert.Equal(t, first.Nom, second.Nom)
	assert.Equal(t, first.Prix, second.Prix)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))

	// Identifiant inconnu.
	w = doRequest(t, router, "PATCH", "/api/menu/9999/availability", payload, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Corps sans champ disponible.
	w = doRequest(t, router, "PATCH", url, map[string]interface{}{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package models

import "time"

// Catégories du menu. La liste est fermée : la validation des paramètres
// d'URL et des corps de requête se fait avant toute requête en base.
const (
	CategorieEntree        = "entree"
	CategoriePlatPrincipal = "plat_principal"
	CategorieDessert       = "dessert"
	CategorieBoisson       = "boisson"
)

var Categories = []string{
	CategorieEntree,
	CategoriePlatPrincipal,
	CategorieDessert,
	CategorieBoisson,
}

type Plat struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nom         string    `gorm:"type:varchar(100);unique;not null" json:"nom"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Prix        float64   `gorm:"type:decimal(10,2);not null" json:"prix"`
	ImageURL    string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Categorie   string    `gorm:"type:varchar(30);not null;index" json:"categorie"`
	// Pas de default en base : gorm omettrait la valeur zéro à l'insertion
	// et un plat créé indisponible serait stocké disponible. Le défaut est
	// appliqué à la création, côté handler.
	Disponible  bool      `gorm:"not null" json:"disponible"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidCategorie(categorie string) bool {
	for _, c := range Categories {
		if c == categorie {
			return true
		}
	}
	return false
}

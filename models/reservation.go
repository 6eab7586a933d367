package models

import "time"

// Statuts d'une réservation. Seul le personnel de salle (role "serveur")
// peut faire passer une réservation d'un statut à un autre.
const (
	StatusEnAttente = "en attente"
	StatusAcceptee  = "acceptée"
	StatusRefusee   = "refusée"
)

type Reservation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Horaire        time.Time `gorm:"not null;index" json:"horaire"`
	NombreCouverts int       `gorm:"not null" json:"nombreCouverts"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Status         string    `gorm:"type:varchar(20);not null;default:'en attente'" json:"status"`
	CreatedAt      time.Time `json:"date"`
	UpdatedAt      time.Time `json:"-"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusEnAttente, StatusAcceptee, StatusRefusee:
		return true
	}
	return false
}

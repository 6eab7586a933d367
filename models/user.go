package models

import "time"

// Rôles côté API. Il n'y en a que deux : les handlers de réservation
// distinguent strictement client et personnel de salle, sans liste de
// permissions.
const (
	RoleClient  = "client"
	RoleServeur = "serveur"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"type:varchar(100);not null" json:"nom"`
	Prenom    string    `gorm:"type:varchar(100);not null" json:"prenom"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Telephone *string   `gorm:"type:varchar(30)" json:"telephone"`
	Role      string    `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleServeur
}

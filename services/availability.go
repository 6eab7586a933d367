package services

import (
	"fmt"
	"time"

	"github.com/latable-app/reservation-backend/models"
)

// SlotCapacity est le nombre de couverts par créneau, identique pour tous
// les créneaux et tous les jours.
const SlotCapacity = 20

// Fenêtres de service : un créneau toutes les 30 minutes, 10 créneaux par
// service (midi et soir), soit 20 créneaux au total. C'est le compte qui
// fait foi : les derniers créneaux (15:30 et 22:30) en découlent, ils ne
// correspondent pas à une heure de fermeture.
var serviceWindows = []struct {
	startHour, startMin int
	slots               int
}{
	{11, 0, 10},
	{18, 0, 10},
}

// Slot est la disponibilité restante d'un créneau horaire.
type Slot struct {
	Heure             string `json:"heure"`
	PlacesDisponibles int    `json:"places_disponibles"`
}

// ServiceSlots retourne les libellés des créneaux dans l'ordre chronologique.
func ServiceSlots() []string {
	var labels []string
	for _, w := range serviceWindows {
		h, m := w.startHour, w.startMin
		for i := 0; i < w.slots; i++ {
			labels = append(labels, fmt.Sprintf("%02d:%02d", h, m))
			m += 30
			if m >= 60 {
				h++
				m -= 60
			}
		}
	}
	return labels
}

// ComputeAvailableSlots calcule la capacité restante de chaque créneau à
// partir des réservations d'une journée. Une réservation occupe environ une
// heure : elle décrémente son créneau et le suivant. Les réservations hors
// fenêtres de service sont ignorées. Le calcul est purement indicatif : il
// ne pose aucun verrou face aux créations concurrentes.
func ComputeAvailableSlots(reservations []models.Reservation) []Slot {
	labels := ServiceSlots()

	remaining := make([]int, len(labels))
	for i := range remaining {
		remaining[i] = SlotCapacity
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	for _, r := range reservations {
		i, ok := index[r.Horaire.Format("15:04")]
		if !ok {
			continue
		}
		remaining[i] -= r.NombreCouverts
		if i+1 < len(remaining) {
			remaining[i+1] -= r.NombreCouverts
		}
	}

	slots := make([]Slot, len(labels))
	for i, label := range labels {
		places := remaining[i]
		if places < 0 {
			places = 0
		}
		slots[i] = Slot{Heure: label, PlacesDisponibles: places}
	}
	return slots
}

// DayBounds retourne les bornes [début, fin) de la journée calendaire d'une
// date, pour la requête des réservations du jour.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

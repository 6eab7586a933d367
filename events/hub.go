package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/latable-app/reservation-backend/models"
)

const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventReservationDelete = "reservation_delete"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub regroupe les connexions websocket du personnel de salle pour leur
// pousser les événements de réservation en temps réel.
type hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var staffHub = hub{
	clients: make(map[*websocket.Conn]struct{}),
}

func RegisterClient(conn *websocket.Conn) {
	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()
	staffHub.clients[conn] = struct{}{}
}

func UnregisterClient(conn *websocket.Conn) {
	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()
	delete(staffHub.clients, conn)
	conn.Close()
}

func BroadcastReservationCreate(reservation models.Reservation) {
	broadcast(Message{Event: EventReservationCreate, Data: reservation})
}

func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: reservation})
}

func BroadcastReservationDelete(reservationID uint) {
	broadcast(Message{Event: EventReservationDelete, Data: map[string]uint{"id": reservationID}})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	staffHub.mutex.Lock()
	defer staffHub.mutex.Unlock()
	for conn := range staffHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(staffHub.clients, conn)
			conn.Close()
		}
	}
}

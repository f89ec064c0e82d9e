package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/ykrutov/floorplan/models"
	"github.com/ykrutov/floorplan/utils"
)

// Event types pushed to board clients.
const (
	EventTableUpdate          = "table_update"
	EventTableCreate          = "table_create"
	EventTableDelete          = "table_delete"
	EventReservationUpdate    = "reservation_update"
	EventReservationCancelled = "reservation_cancelled"
	EventDashboardUpdate      = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected board client. There is one hub per process; the
// floor is a single shared surface, so every client gets every event.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

func BroadcastTableDelete(tableID uint) {
	broadcast(Message{Event: EventTableDelete, Data: map[string]interface{}{"table_id": tableID}})
}

func BroadcastReservationUpdate(res models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: res})
}

func BroadcastReservationCancelled(reservationID uint) {
	broadcast(Message{Event: EventReservationCancelled, Data: map[string]interface{}{"reservation_id": reservationID}})
}

func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}

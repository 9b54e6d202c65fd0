package rosterhub

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
	"github.com/mergington/activities/pkg/rosterdb/model"
)

// Event commands
const (
	EventSignedUp     = "SIGNED_UP"
	EventUnregistered = "UNREGISTERED"
)

// Event describes one change to an activity roster.
type Event struct {
	Command          string    `json:"command"`
	Activity         string    `json:"activity"`
	Email            string    `json:"email"`
	ParticipantCount int       `json:"participant_count"`
	Timestamp        time.Time `json:"timestamp"`
}

// Hub fans roster events out to every connected websocket client. Run
// must be running for clients to register and receive events.
type Hub struct {
	clients    map[string]*ClientConnection
	mu         sync.RWMutex
	register   chan *ClientConnection
	unregister chan *ClientConnection
	broadcast  chan Event
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*ClientConnection),
		register:   make(chan *ClientConnection),
		unregister: make(chan *ClientConnection),
		broadcast:  make(chan Event, 100),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.WithField("client", client.ID).Info("roster events client connected")

		case client := <-h.unregister:
			h.removeClient(client)
			log.WithField("client", client.ID).Info("roster events client disconnected")

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) broadcastEvent(event Event) {
	var slow []*ClientConnection

	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- event:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		log.WithField("client", client.ID).Warn("dropping slow roster events client")
		h.removeClient(client)
	}
}

func (h *Hub) removeClient(client *ClientConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		delete(h.clients, id)
		close(client.Send)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) PublishSignup(activity *model.Activity, email string) {
	h.publish(EventSignedUp, activity, email)
}

func (h *Hub) PublishCancel(activity *model.Activity, email string) {
	h.publish(EventUnregistered, activity, email)
}

// publish never blocks the caller. If the broadcast queue is full the
// event is dropped.
func (h *Hub) publish(command string, activity *model.Activity, email string) {
	event := Event{
		Command:          command,
		Activity:         activity.Name,
		Email:            email,
		ParticipantCount: len(activity.Participants),
		Timestamp:        time.Now(),
	}

	select {
	case h.broadcast <- event:
	default:
		log.WithFields(log.Fields{"command": command, "activity": activity.Name}).Warn("roster event queue full, dropping event")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request to a websocket and registers it with the hub.
func (h *Hub) ServeWS(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.WithError(err).Warn("websocket upgrade failed")
		return nil
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		_ = conn.Close()
		return err
	}

	client := &ClientConnection{
		ID:   id,
		Conn: conn,
		Send: make(chan Event, 16),
		Hub:  h,
	}

	select {
	case h.register <- client:
	case <-h.done:
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "roster events are not available")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return nil
}

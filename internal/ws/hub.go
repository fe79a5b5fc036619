package ws

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Event is the wire envelope pushed to import listeners.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub is the import progress channel: a registry of live websocket
// connections keyed by an opaque client id. Events are broadcast to every
// connected listener and may additionally be sent to one specific client.
// There is no backlog: a listener that connects after an event was emitted
// never sees it.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[clientID]; ok {
		old.Close()
	}
	h.clients[clientID] = conn
}

// Unregister removes the connection only if it is still the one registered
// under clientID; a replaced connection's late cleanup must not evict its
// successor.
func (h *Hub) Unregister(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[clientID] == conn {
		delete(h.clients, clientID)
	}
}

// Count reports how many listeners are connected.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Emit broadcasts the event to all connected listeners. Connections that
// fail to take the write are dropped.
func (h *Hub) Emit(event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for clientID, conn := range h.clients {
		if err := conn.WriteJSON(Event{Event: event, Data: data}); err != nil {
			conn.Close()
			delete(h.clients, clientID)
		}
	}
}

// EmitTo delivers the event to the one listener registered under clientID,
// if it is currently connected.
func (h *Hub) EmitTo(clientID, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.clients[clientID]
	if !ok {
		return
	}
	if err := conn.WriteJSON(Event{Event: event, Data: data}); err != nil {
		conn.Close()
		delete(h.clients, clientID)
	}
}

// UpgradeMiddleware rejects plain HTTP requests on websocket routes.
func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away. The client may present its own id via ?client_id=...; otherwise
// one is generated for the lifetime of the connection.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		clientID := c.Query("client_id")
		if clientID == "" {
			clientID = uuid.New().String()
		}

		h.Register(clientID, c)
		defer h.Unregister(clientID, c)

		if err := c.WriteJSON(Event{Event: "connected", Data: map[string]string{"client_id": clientID}}); err != nil {
			return
		}

		c.SetReadLimit(1024)
		for {
			// Clients never send payloads; the read loop only notices EOF.
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// Package sessionws streams workout-session events (ticks, exercise
// advances, gating, completion) to a user's connected clients, and
// relays advance/abandon commands back to the session manager.
package sessionws

import (
	"encoding/json"
	"log"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/session"
)

// Hub invariant: client.send is written and closed only on the Run
// goroutine. Other goroutines hand payloads to Run through the events
// and direct channels, so a send can never race a close.
type Hub struct {
	clients    map[int64]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	events     chan userEvent
	direct     chan directMessage
}

type userEvent struct {
	userID int64
	event  session.Event
}

type directMessage struct {
	client  *Client
	payload []byte
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID int64
	send   chan []byte
}

// commander is the slice of the session manager the hub drives from
// incoming client messages.
type commander interface {
	Advance(userID int64) (session.Snapshot, error)
	Abandon(userID int64)
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 64),
		direct:     make(chan directMessage, 16),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.userID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.userID)
			}
		case ue := <-h.events:
			h.deliver(ue.userID, ue.event)
		case dm := <-h.direct:
			h.send(dm.client, dm.payload)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish implements session.EventSink. Delivery is fire-and-forget: a
// full hub queue drops the event rather than stalling the session
// state machine.
func (h *Hub) Publish(userID int64, event session.Event) {
	select {
	case h.events <- userEvent{userID: userID, event: event}:
	default:
		log.Printf("session hub: event queue full, dropping %s for user %d", event.Type, userID)
	}
}

func (h *Hub) deliver(userID int64, event session.Event) {
	encoded, err := json.Marshal(event)
	if err != nil {
		log.Printf("session hub encode event: %v", err)
		return
	}

	set, ok := h.clients[userID]
	if !ok {
		return
	}

	for client := range set {
		h.send(client, encoded)
	}
}

// send runs on the Run goroutine only. A client whose buffer is full is
// evicted rather than waited on.
func (h *Hub) send(client *Client, payload []byte) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := set[client]; !exists {
		return
	}

	select {
	case client.send <- payload:
	default:
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (c *Client) ReadPump(manager commander) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.writeError("invalid command payload")
			continue
		}

		switch incoming.Type {
		case "advance":
			if _, err := manager.Advance(c.userID); err != nil {
				c.writeError(err.Error())
			}
		case "abandon":
			manager.Abandon(c.userID)
		default:
			c.writeError("unsupported command type")
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// writeError hands the payload to the hub goroutine instead of writing
// c.send directly: the hub may close that channel at any moment.
// Delivery is best-effort; a full queue drops the error message.
func (c *Client) writeError(message string) {
	payload, err := json.Marshal(map[string]string{
		"type":  "error",
		"error": message,
	})
	if err != nil {
		return
	}
	select {
	case c.hub.direct <- directMessage{client: c, payload: payload}:
	default:
	}
}

package services

import (
	"encoding/json"
	"sync"

	"backend/models"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// ChatHub tracks open websocket connections per user and fans chat events out
// to them. Delivery is best effort; clients reconcile through the REST history
// endpoint.
type ChatHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewChatHub() *ChatHub {
	return &ChatHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *ChatHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ChatHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// BroadcastMessage pushes a newly stored message to every open socket of both
// conversation parties.
func (h *ChatHub) BroadcastMessage(m *models.Message) {
	payload := map[string]any{
		"kind":    "chat.message",
		"message": m,
	}
	h.sendTo(m.SenderID, payload)
	if m.RecipientID != m.SenderID {
		h.sendTo(m.RecipientID, payload)
	}
}

func (h *ChatHub) sendTo(userID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}

package ws

import (
	"encoding/json"
	"time"

	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client is one websocket connection bound to an authenticated user.
type Client struct {
	manager *Manager
	conn    *websocket.Conn
	userID  string
	role    models.UserRole
	send    chan []byte

	// channels is owned by the manager and guarded by its mutex.
	channels map[string]struct{}
}

func newClient(manager *Manager, conn *websocket.Conn, userID string, role models.UserRole) *Client {
	return &Client{
		manager:  manager,
		conn:     conn,
		userID:   userID,
		role:     role,
		send:     make(chan []byte, sendBufferSize),
		channels: make(map[string]struct{}),
	}
}

type joinPayload struct {
	ComplaintID string `json:"complaintId"`
}

type sendMessagePayload struct {
	ComplaintID string `json:"complaintId"`
	Text        string `json:"text"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// readPump consumes client events until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.userID, "error", err)
			}
			return
		}
		c.handleEvent(raw)
	}
}

// writePump flushes outbound events and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleEvent(raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		c.sendError("invalid event payload")
		return
	}

	switch event.Event {
	case "join_complaint":
		c.handleJoin(event.Data)
	case "leave_complaint":
		c.handleLeave(event.Data)
	case "send_message":
		c.handleSendMessage(event.Data)
	default:
		c.sendError("unknown event: " + event.Event)
	}
}

// handleJoin subscribes to a complaint channel after verifying the
// user may see that complaint.
func (c *Client) handleJoin(data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ComplaintID == "" {
		c.sendError("complaintId required")
		return
	}

	if _, err := c.manager.complaintService.Get(c.userID, c.role, payload.ComplaintID); err != nil {
		c.sendError("cannot join complaint channel")
		return
	}

	c.manager.subscribe(c, complaintChannel(payload.ComplaintID))
}

func (c *Client) handleLeave(data json.RawMessage) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ComplaintID == "" {
		c.sendError("complaintId required")
		return
	}

	c.manager.unsubscribe(c, complaintChannel(payload.ComplaintID))
}

// handleSendMessage persists the message through the message service,
// fans the stored record out to everyone in the complaint channel and
// nudges the counterpart's personal channel in case they are online but
// not watching this complaint.
func (c *Client) handleSendMessage(data json.RawMessage) {
	var payload sendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.ComplaintID == "" {
		c.sendError("complaintId and text required")
		return
	}

	message, recipientID, err := c.manager.messageService.SendMessage(c.userID, c.role, payload.ComplaintID, payload.Text)
	if err != nil {
		c.sendError("failed to send message")
		return
	}

	c.manager.BroadcastToChannel(complaintChannel(payload.ComplaintID), "message", message)
	if recipientID != "" {
		c.manager.PushToUser(recipientID, "new_message", message)
	}
}

func (c *Client) sendError(message string) {
	raw, err := marshalEvent("error", errorPayload{Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

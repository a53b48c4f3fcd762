package ws

import (
	"encoding/json"
	"sync"

	"resolvenow_backend/internal/logger"
	"resolvenow_backend/internal/services"
)

// Manager tracks connected clients and the channels they subscribe to.
// Channels are either personal ("user:<id>", joined automatically on
// connect) or per-complaint ("complaint:<id>", joined on request after
// an access check).
type Manager struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	messageService   services.MessageService
	complaintService services.ComplaintService
}

// Event is the wire envelope for both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewManager() *Manager {
	return &Manager{
		channels:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetServices breaks the construction cycle: the manager is created
// before the service container because the notification service pushes
// through it.
func (m *Manager) SetServices(messageService services.MessageService, complaintService services.ComplaintService) {
	m.messageService = messageService
	m.complaintService = complaintService
}

// Run processes connect and disconnect events. Call it once, from its
// own goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.subscribe(client, userChannel(client.userID))
			logger.Debug("ws client connected", "user_id", client.userID)

		case client := <-m.unregister:
			m.dropClient(client)
			logger.Debug("ws client disconnected", "user_id", client.userID)
		}
	}
}

func userChannel(userID string) string {
	return "user:" + userID
}

func complaintChannel(complaintID string) string {
	return "complaint:" + complaintID
}

func (m *Manager) subscribe(client *Client, channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.channels[channel] == nil {
		m.channels[channel] = make(map[*Client]struct{})
	}
	m.channels[channel][client] = struct{}{}
	client.channels[channel] = struct{}{}
}

func (m *Manager) unsubscribe(client *Client, channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeFromChannel(client, channel)
}

func (m *Manager) dropClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for channel := range client.channels {
		m.removeFromChannel(client, channel)
	}
	close(client.send)
}

// removeFromChannel expects m.mu to be held.
func (m *Manager) removeFromChannel(client *Client, channel string) {
	if members, ok := m.channels[channel]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.channels, channel)
		}
	}
	delete(client.channels, channel)
}

// BroadcastToChannel sends an event to every subscriber. Slow clients
// whose buffers are full are skipped rather than blocking the caller.
func (m *Manager) BroadcastToChannel(channel string, event string, payload interface{}) {
	raw, err := marshalEvent(event, payload)
	if err != nil {
		logger.Warn("failed to marshal ws event", "event", event, "error", err)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.channels[channel] {
		select {
		case client.send <- raw:
		default:
		}
	}
}

// PushToUser delivers an event to the user's personal channel. It
// implements the notification push hook.
func (m *Manager) PushToUser(userID string, event string, payload interface{}) {
	m.BroadcastToChannel(userChannel(userID), event, payload)
}

// ChannelSize reports the subscriber count for a channel.
func (m *Manager) ChannelSize(channel string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.channels[channel])
}

func marshalEvent(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Data: data})
}

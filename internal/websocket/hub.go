package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks which clients are watching which inspection and fans
// plan updates out to them. A phone and a desktop reviewer commonly
// watch the same sketch at once.
type Hub struct {
	// Connected clients grouped by inspection ID.
	sessions map[string]map[*Client]bool

	// Register requests from clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu  sync.RWMutex
	log *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run processes register/unregister requests. Call it in its own
// goroutine before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			group := h.sessions[client.inspectionID]
			if group == nil {
				group = make(map[*Client]bool)
				h.sessions[client.inspectionID] = group
			}
			group[client] = true
			h.mu.Unlock()
			h.log.Infof("📱 Sketch client connected: inspection %s", client.inspectionID)

		case client := <-h.unregister:
			h.mu.Lock()
			if group, ok := h.sessions[client.inspectionID]; ok && group[client] {
				delete(group, client)
				close(client.send)
				if len(group) == 0 {
					delete(h.sessions, client.inspectionID)
				}
				h.log.Infof("📴 Sketch client disconnected: inspection %s", client.inspectionID)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastPlan sends a message to every client watching the given
// inspection. Clients with a full send buffer are skipped; they catch
// up on their next periodic refresh.
func (h *Hub) BroadcastPlan(inspectionID string, message interface{}) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.log.Errorf("Error marshaling plan broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.sessions[inspectionID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}

// Watchers reports how many clients are connected to an inspection.
func (h *Hub) Watchers(inspectionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[inspectionID])
}

package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB

	// How often the session re-reads the database so hit testing stays
	// accurate while other clients edit the same sketch.
	refreshInterval = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for mobile app access
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Store is the slice of persistence the sketch socket needs: the
// session's write operations plus a way to reload the full state.
type Store interface {
	sketch.Persister
	LoadState(ctx context.Context, inspectionID string) (sketch.State, error)
}

// event is a single editor action sent by a connected client.
type event struct {
	Type     string  `json:"type"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Tool     string  `json:"tool,omitempty"`
	RoomID   string  `json:"roomId,omitempty"`
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	LengthFt float64 `json:"lengthFt,omitempty"`
	WidthFt  float64 `json:"widthFt,omitempty"`
	Label    string  `json:"label,omitempty"`
	Value    string  `json:"value,omitempty"`
	Zoom     float64 `json:"zoom,omitempty"`
}

// Client is a middleman between one websocket connection and the hub.
// Each client owns a private edit session: selection, active tool and
// viewport are per-device state, while room geometry lives in the
// database shared by everyone on the inspection.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// Editor actions decoded by readPump, consumed by run.
	events chan event

	inspectionID string
	store        Store
	session      *sketch.EditSession
	log          *zap.SugaredLogger
}

// readPump pumps messages from the websocket connection into the
// client's event channel. Closing the event channel is how it tells
// run to finish; unregistering is run's job.
func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		close(c.events)
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warnf("⚠️ Sketch socket error: %v", err)
			}
			break
		}

		var ev event
		if err := json.Unmarshal(message, &ev); err != nil {
			c.sendError("invalid message: " + err.Error())
			continue
		}
		c.events <- ev
	}
}

// run owns the edit session. All session access happens on this
// goroutine, so the session itself needs no locking. It also owns the
// hub unregistration, performed only after readPump has exited and the
// event channel has drained: the hub closes the send channel on
// unregister, and by then no goroutine can queue another message.
func (c *Client) run() {
	ctx := context.Background()
	ticker := time.NewTicker(refreshInterval)
	defer func() {
		ticker.Stop()
		c.hub.unregister <- c
	}()

	c.reload(ctx)
	c.sendPlan()

	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return
			}
			c.handleEvent(ctx, ev)
		case <-ticker.C:
			c.reload(ctx)
		}
	}
}

func (c *Client) handleEvent(ctx context.Context, ev event) {
	var (
		mutated bool
		err     error
	)

	switch ev.Type {
	case "set_tool":
		tool, ok := sketch.ParseTool(ev.Tool)
		if !ok {
			c.sendError("unknown tool: " + ev.Tool)
			return
		}
		mutated, err = c.session.SetTool(ctx, tool)
		c.sendPending()

	case "pointer_down":
		mutated, err = c.session.PointerDown(ctx, sketch.Point{X: ev.X, Y: ev.Y})
		if c.session.Pending() != nil {
			c.sendPending()
		}
		c.sendSelection()

	case "pointer_move":
		mutated, err = c.session.PointerMove(ctx, sketch.Point{X: ev.X, Y: ev.Y})

	case "pointer_up":
		mutated, err = c.session.PointerUp(ctx)

	case "pointer_cancel":
		mutated, err = c.session.PointerCancel(ctx)

	case "select_room":
		c.session.SelectRoom(ev.RoomID)
		c.sendSelection()

	case "pending_room":
		c.session.UpdatePendingRoom(ev.LengthFt, ev.WidthFt)
		c.sendPending()

	case "confirm_room":
		room, confirmErr := c.session.ConfirmPendingRoom(ctx, ev.Name, ev.LengthFt, ev.WidthFt)
		mutated, err = room != nil, confirmErr
		c.sendPending()

	case "cancel_room":
		c.session.CancelPendingRoom()
		c.sendPending()

	case "delete_opening":
		mutated, err = c.session.DeleteOpening(ctx, ev.ID)

	case "delete_annotation":
		mutated, err = c.session.DeleteAnnotation(ctx, ev.ID)

	case "update_annotation":
		mutated, err = c.session.UpdateAnnotationText(ctx, ev.ID, ev.Label, ev.Value)

	case "undo":
		mutated = c.session.Undo(ctx)

	case "redo":
		mutated = c.session.Redo(ctx)

	case "zoom":
		c.session.SetZoom(ev.Zoom)

	case "refresh":
		c.reload(ctx)
		c.sendPlan()

	default:
		c.sendError("unknown event type: " + ev.Type)
		return
	}

	if err != nil {
		c.log.Warnw("⚠️ Sketch event failed", "inspection", c.inspectionID, "event", ev.Type, "error", err)
		c.sendError(err.Error())
	}
	if mutated {
		c.reload(ctx)
		c.hub.BroadcastPlan(c.inspectionID, map[string]interface{}{
			"type": "plan",
			"plan": c.session.Plan(),
		})
	}
}

// reload re-reads the inspection from the database and swaps it into
// the session. Called after every mutation and on the refresh ticker.
func (c *Client) reload(ctx context.Context) {
	st, err := c.store.LoadState(ctx, c.inspectionID)
	if err != nil {
		c.log.Errorw("Failed to load sketch state", "inspection", c.inspectionID, "error", err)
		return
	}
	c.session.SetState(st)
}

func (c *Client) sendPlan() {
	c.sendJSON(map[string]interface{}{
		"type": "plan",
		"plan": c.session.Plan(),
	})
}

// sendPending mirrors the staged ghost room back to the editing
// client. A nil pending clears the preview.
func (c *Client) sendPending() {
	c.sendJSON(map[string]interface{}{
		"type":    "ghost",
		"pending": c.session.Pending(),
	})
}

func (c *Client) sendSelection() {
	c.sendJSON(map[string]interface{}{
		"type":   "selection",
		"roomId": c.session.SelectedRoom(),
	})
}

func (c *Client) sendError(msg string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": msg,
	})
}

// sendJSON queues a message for this client only. Messages are dropped
// if the outbound buffer is full; the next plan refresh catches the
// client up.
func (c *Client) sendJSON(v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Errorf("Error marshaling socket message: %v", err)
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// writePump pumps messages from the send channel to the websocket
// connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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

// ServeSketch upgrades an HTTP request to a live sketch-editing
// connection for one inspection.
func ServeSketch(hub *Hub, store Store, log *zap.SugaredLogger, params sketch.Params, inspectionID string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("⚠️ Sketch socket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, 256),
		events:       make(chan event, 64),
		inspectionID: inspectionID,
		store:        store,
		session:      sketch.NewEditSession(inspectionID, store, log, params),
		log:          log,
	}
	client.hub.register <- client

	go client.writePump()
	go client.run()
	go client.readPump()
}

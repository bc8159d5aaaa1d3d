package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/claimsketch-com/claimsketchgo/internal/models"
	"github.com/claimsketch-com/claimsketchgo/internal/sketch"
)

// stubStore satisfies Store with no-op writes and a LoadState that can
// be slowed down to widen goroutine handoff windows.
type stubStore struct {
	loadDelay time.Duration
}

func (s *stubStore) LoadState(ctx context.Context, inspectionID string) (sketch.State, error) {
	if s.loadDelay > 0 {
		time.Sleep(s.loadDelay)
	}
	return sketch.State{}, nil
}

func (s *stubStore) CreateRoom(ctx context.Context, room *models.Room) error { return nil }
func (s *stubStore) UpdateRoom(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (s *stubStore) DeleteRoom(ctx context.Context, id string) error { return nil }
func (s *stubStore) CreateOpening(ctx context.Context, op *models.Opening) error { return nil }
func (s *stubStore) UpdateOpening(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (s *stubStore) DeleteOpening(ctx context.Context, id string) error { return nil }
func (s *stubStore) CreateAnnotation(ctx context.Context, a *models.Annotation) error { return nil }
func (s *stubStore) UpdateAnnotation(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (s *stubStore) DeleteAnnotation(ctx context.Context, id string) error { return nil }
func (s *stubStore) CreateAdjacency(ctx context.Context, adj *models.Adjacency) error { return nil }
func (s *stubStore) DeleteAdjacency(ctx context.Context, id string) error { return nil }

func sketchServer(t *testing.T, hub *Hub, st Store, inspectionID string) *httptest.Server {
	t.Helper()
	log := zap.NewNop().Sugar()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSketch(hub, st, log, sketch.DefaultParams(), inspectionID, w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialSketch(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestClientDisconnectDuringInitialLoad(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run()

	st := &stubStore{loadDelay: 200 * time.Millisecond}
	srv := sketchServer(t, hub, st, "insp-1")

	conn := dialSketch(t, srv)
	waitFor(t, "client to register", func() bool { return hub.Watchers("insp-1") == 1 })

	// Drop the connection while the session is still loading its first
	// state. The send channel must stay open until the run goroutine
	// has queued its initial plan; closing it early panics the server.
	conn.Close()

	waitFor(t, "client to unregister", func() bool { return hub.Watchers("insp-1") == 0 })
}

func TestClientReceivesInitialPlan(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run()

	srv := sketchServer(t, hub, &stubStore{}, "insp-2")
	conn := dialSketch(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if frame.Type != "plan" {
		t.Errorf("first frame type: got %q, want plan", frame.Type)
	}
}

func TestHubBroadcastReachesWatchers(t *testing.T) {
	hub := NewHub(zap.NewNop().Sugar())
	go hub.Run()

	srv := sketchServer(t, hub, &stubStore{}, "insp-3")
	conn := dialSketch(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}

	hub.BroadcastPlan("insp-3", map[string]interface{}{"type": "plan"})
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read broadcast frame: %v", err)
	}
	if frame.Type != "plan" {
		t.Errorf("broadcast frame type: got %q, want plan", frame.Type)
	}
}

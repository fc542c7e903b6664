package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// frameSnapshot is the JSON payload pushed to every connected telemetry
// client once per frame. Field names are lower-camel to match the
// conventions of the dashboards that consume onuse-worldgenerator_go's
// equivalent MeshData payload.
type frameSnapshot struct {
	FrameTimeMS  float64 `json:"frameTimeMs"`
	DispatchX    int     `json:"dispatchX"`
	DispatchY    int     `json:"dispatchY"`
	ComputeW     int     `json:"computeW"`
	ComputeH     int     `json:"computeH"`
	Reallocated  bool    `json:"reallocated"`
	FenceOK      bool    `json:"fenceOk"`
	CameraMoving bool    `json:"cameraMoving"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// telemetryServer runs outside the render loop on background goroutines
// (the HTTP server plus one disconnect-detecting reader per client),
// broadcasting frameSnapshot JSON to whatever dashboards connect over /ws.
// It never feeds back into rendering; a slow client can delay a frame by
// at most the per-write deadline in Publish.
type telemetryServer struct {
	server *http.Server

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func newTelemetryServer() *telemetryServer {
	return &telemetryServer{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Start launches the telemetry HTTP server in a background goroutine and
// returns immediately; a bind failure is returned so the caller can log it
// and continue rendering without telemetry.
func (t *telemetryServer) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", t.handleWebSocket)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("telemetry listen: %w", err)
	}

	t.server = &http.Server{Handler: mux}
	go func() {
		if err := t.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Printf("telemetry server stopped: %v\n", err)
		}
	}()

	fmt.Printf("telemetry endpoint listening on ws://%s/ws\n", addr)
	return nil
}

func (t *telemetryServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("telemetry upgrade error: %v\n", err)
		return
	}

	t.mu.Lock()
	t.clients[conn] = struct{}{}
	t.mu.Unlock()

	// Drain and discard anything the client sends; this endpoint is
	// publish-only. The read loop exists solely to detect disconnects.
	go func() {
		defer t.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (t *telemetryServer) removeClient(conn *websocket.Conn) {
	t.mu.Lock()
	delete(t.clients, conn)
	t.mu.Unlock()
	conn.Close()
}

// Publish marshals snap and writes it to every connected client. Writes use
// a 50 ms deadline, so one stalled client blocks the calling frame for at
// most that long; a write failure just drops that client.
func (t *telemetryServer) Publish(snap frameSnapshot) {
	t.mu.RLock()
	if len(t.clients) == 0 {
		t.mu.RUnlock()
		return
	}
	conns := make([]*websocket.Conn, 0, len(t.clients))
	for c := range t.clients {
		conns = append(conns, c)
	}
	t.mu.RUnlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(50 * time.Millisecond))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			t.removeClient(conn)
		}
	}
}

// Stop shuts the telemetry server down, closing every client connection.
func (t *telemetryServer) Stop() {
	if t.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	t.server.Shutdown(ctx)

	t.mu.Lock()
	for c := range t.clients {
		c.Close()
	}
	t.clients = make(map[*websocket.Conn]struct{})
	t.mu.Unlock()
}

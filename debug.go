package mqttsn

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/golang-io/requests"
	"github.com/gorilla/websocket"
)

// snapshot is what Monitor pushes to connected websocket clients: just
// enough to watch a running client from outside without instrumenting it.
type snapshot struct {
	GatewayState string `json:"gateway_state"`
	QueueDepth   int    `json:"queue_depth"`
	MsgID        uint16 `json:"msg_id"`
}

// Monitor streams periodic Client snapshots over a websocket, for live
// observation during development. The teacher's own websocket use
// (conn.go/server.go) is server-side MQTT-over-websocket transport using
// golang.org/x/net/websocket; this is a distinct, debug-only concern, so
// it is built on gorilla/websocket instead — the dependency the teacher's
// go.mod already carries but its own code never imports.
type Monitor struct {
	client *Client

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewMonitor creates a Monitor for c. It does nothing until Run or Httpd
// is called.
func NewMonitor(c *Client) *Monitor {
	return &Monitor{
		client:  c,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

func (m *Monitor) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("monitor: upgrade failed: error=%v", err)
		return
	}
	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast pushes snap to every connected client, dropping any that
// error (the read goroutine above will clean it up).
func (m *Monitor) broadcast(snap snapshot) {
	b, err := json.Marshal(snap)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			conn.Close()
			delete(m.clients, conn)
		}
	}
}

// Run periodically snapshots the client's observable state and pushes it
// to every connected websocket client, until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			m.broadcast(snapshot{
				GatewayState: m.client.GatewayState().String(),
				QueueDepth:   m.client.QueueLen(),
				MsgID:        m.client.msgID,
			})
		}
	}
}

// Httpd serves the monitor's websocket endpoint at /ws on addr; it serves
// no metrics, which Stat.Httpd exposes on its own server. Grounded on the
// same requests.NewServeMux/NewServer pair the teacher's stat.go uses.
func (m *Monitor) Httpd(addr string) error {
	mux := requests.NewServeMux(requests.URL(addr))
	mux.Route("/ws", http.HandlerFunc(m.handleWS))
	srv := requests.NewServer(context.Background(), mux, requests.OnStart(func(s *http.Server) {
		log.Printf("monitor http serve: addr=%s", s.Addr)
	}))
	return srv.ListenAndServe()
}

package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vulnscope/vulnscope/internal/adapters/web/middleware"
	"github.com/vulnscope/vulnscope/internal/core/domain"
	"github.com/vulnscope/vulnscope/internal/core/ports"
	"github.com/vulnscope/vulnscope/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Allow same-origin (no Origin header)
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
			"http://[::1]:8080",
		}

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}

		log.Printf("WebSocket: Rejected origin: %s", origin)
		return false
	},
}

// DefaultMaxClients caps concurrent dashboard connections.
const DefaultMaxClients = 256

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// postureUpdate is the payload for posture broadcast messages.
type postureUpdate struct {
	Key     domain.PostureKey      `json:"key"`
	Posture domain.SecurityPosture `json:"posture"`
}

// WSManager fans posture updates and alerts out to connected dashboard
// clients. It implements ports.PostureBroadcaster.
type WSManager struct {
	Clients    map[*websocket.Conn]*domain.User
	MaxClients int
	mu         sync.Mutex
}

func NewWSManager() *WSManager {
	return &WSManager{
		Clients:    make(map[*websocket.Conn]*domain.User),
		MaxClients: DefaultMaxClients,
	}
}

func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Extract user from context (set by AuthMiddleware)
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	m.mu.Lock()
	if len(m.Clients) >= m.MaxClients {
		m.mu.Unlock()
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	m.mu.Unlock()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	m.mu.Lock()
	m.Clients[conn] = user
	m.mu.Unlock()
	telemetry.WSClients.Inc()

	log.Printf("WebSocket connected: user=%s, role=%s", user.Username, user.Role)

	// Clean up on disconnect
	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.Clients, conn)
			m.mu.Unlock()
			telemetry.WSClients.Dec()
			log.Printf("WebSocket disconnected: user=%s", user.Username)
		}()
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				break
			}
		}
	}()
}

// BroadcastPosture pushes a fresh posture snapshot to the affected user's
// connections. Global-scope snapshots go to everyone.
func (m *WSManager) BroadcastPosture(key domain.PostureKey, posture domain.SecurityPosture) {
	msg := WSMessage{
		Type:    "posture:update",
		Payload: postureUpdate{Key: key, Posture: posture},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn, user := range m.Clients {
		if key.ViewScope != "global" && key.UserID != "" && user.ID != key.UserID {
			continue
		}
		m.writeLocked(conn, data)
	}
}

// NotifyNewVulnerability broadcasts a freshly imported vulnerability.
func (m *WSManager) NotifyNewVulnerability(vuln domain.VulnerabilityRecord) {
	m.broadcastMessage(WSMessage{Type: "vulnerability:new", Payload: vuln})
}

func (m *WSManager) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.Clients {
		m.writeLocked(conn, data)
	}
}

// writeLocked writes to a single connection; callers hold m.mu.
func (m *WSManager) writeLocked(conn *websocket.Conn, data []byte) {
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		conn.Close()
		delete(m.Clients, conn)
		telemetry.WSClients.Dec()
	}
}

// Ensure interface compliance
var (
	_ ports.PostureBroadcaster    = (*WSManager)(nil)
	_ ports.VulnerabilityNotifier = (*WSManager)(nil)
)

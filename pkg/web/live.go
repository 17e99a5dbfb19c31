package web

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/database"
	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
	liveSendBuffer = 16
)

// LiveMessage is pushed to dashboard sockets when a guild changes
type LiveMessage struct {
	Type     string `json:"type"`
	GuildID  string `json:"guildId"`
	Document string `json:"document"`
	UserID   string `json:"userId,omitempty"`
	Settings any    `json:"settings,omitempty"`
}

type liveClient struct {
	guildID string
	send    chan []byte
}

// LiveHub fans store change events out to websocket clients grouped by
// guild. Slow clients are dropped rather than blocking the store.
type LiveHub struct {
	repos    *database.Repositories
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*liveClient]struct{}
}

// NewLiveHub creates a hub and subscribes it to the store's changes.
// allowedOrigin "*" accepts any origin.
func NewLiveHub(repos *database.Repositories, allowedOrigin string) *LiveHub {
	h := &LiveHub{
		repos:   repos,
		clients: make(map[string]map[*liveClient]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(allowedOrigin, r.Header.Get("Origin"))
		},
	}
	repos.Store.Subscribe(h.onChange)
	return h
}

func originAllowed(allowed, origin string) bool {
	if allowed == "" || allowed == "*" || origin == "" {
		return true
	}
	a, err1 := url.Parse(allowed)
	o, err2 := url.Parse(origin)
	if err1 != nil || err2 != nil {
		return false
	}
	return a.Scheme == o.Scheme && a.Host == o.Host
}

// ClientCount returns the number of sockets watching guildID
func (h *LiveHub) ClientCount(guildID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[guildID])
}

func (h *LiveHub) add(cl *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[cl.guildID]
	if !ok {
		set = make(map[*liveClient]struct{})
		h.clients[cl.guildID] = set
	}
	set[cl] = struct{}{}
}

func (h *LiveHub) remove(cl *liveClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[cl.guildID]
	if _, ok := set[cl]; !ok {
		return
	}
	delete(set, cl)
	close(cl.send)
	if len(set) == 0 {
		delete(h.clients, cl.guildID)
	}
}

// onChange runs synchronously inside store mutations; it must not block
func (h *LiveHub) onChange(ev database.ChangeEvent) {
	if ev.GuildID == "" || h.ClientCount(ev.GuildID) == 0 {
		return
	}

	msg := LiveMessage{
		Type:     "update",
		GuildID:  ev.GuildID,
		Document: ev.Document,
		UserID:   ev.UserID,
	}
	if ev.Document == database.DocGuilds {
		go h.broadcastConfig(msg)
		return
	}
	h.Broadcast(msg)
}

// broadcastConfig attaches the current configuration. Reading it may hit
// the backend, so it runs off the listener goroutine.
func (h *LiveHub) broadcastConfig(msg LiveMessage) {
	msg.Settings = h.repos.Guilds.Get(msg.GuildID)
	h.Broadcast(msg)
}

// Broadcast sends msg to every socket watching msg.GuildID
func (h *LiveHub) Broadcast(msg LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error(fmt.Sprintf("Error serializando evento en vivo: %v", err), "WebSocket")
		return
	}

	h.mu.RLock()
	var slow []*liveClient
	for cl := range h.clients[msg.GuildID] {
		select {
		case cl.send <- data:
		default:
			slow = append(slow, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range slow {
		h.remove(cl)
	}
}

// Handle upgrades the request and streams the guild's changes
func (h *LiveHub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo abrir el websocket: %v", err), "WebSocket")
		return
	}

	cl := &liveClient{
		guildID: c.Param("id"),
		send:    make(chan []byte, liveSendBuffer),
	}
	hello, _ := json.Marshal(LiveMessage{
		Type:     "snapshot",
		GuildID:  cl.guildID,
		Document: database.DocGuilds,
		Settings: h.repos.Guilds.Get(cl.guildID),
	})
	cl.send <- hello
	h.add(cl)

	go h.writePump(conn, cl)
	h.readPump(conn, cl)
}

// readPump only exists to process pings and notice the close
func (h *LiveHub) readPump(conn *websocket.Conn, cl *liveClient) {
	defer func() {
		h.remove(cl)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug(fmt.Sprintf("Websocket cerrado: %v", err), "WebSocket")
			}
			return
		}
	}
}

func (h *LiveHub) writePump(conn *websocket.Conn, cl *liveClient) {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

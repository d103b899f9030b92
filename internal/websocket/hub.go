package chatws

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	sendBufferSize  = 32
	broadcastBuffer = 64
	sendTimeout     = 5 * time.Second
)

// Hub relays every persisted chat message to every connected client. Only the Run
// goroutine touches the client set.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	stopped    chan struct{}
	metrics    *metrics.Manager
}

type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	userID int64
	send   chan []byte

	// mu guards closed; the read pump queues error frames while Run may be closing send
	mu     sync.Mutex
	closed bool
}

type sender interface {
	Send(ctx context.Context, senderID, receiverID int64, message string) (*models.ChatMessage, error)
}

type Message struct {
	Type       string `json:"type"`
	ID         int64  `json:"id,omitempty"`
	SenderID   int64  `json:"sender_id,omitempty"`
	ReceiverID int64  `json:"receiver_id,omitempty"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// NewHub accepts a nil metrics manager.
func NewHub(metricsManager *metrics.Manager) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, broadcastBuffer),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		metrics:    metricsManager,
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64) *Client {
	return &Client{
		id:     uuid.NewString(),
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case client := <-h.register:
			h.clients[client.id] = client
			log.Infof("chat client %s connected (user %d), %d online", client.id, client.userID, len(h.clients))
			h.updateGauge()
		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				h.drop(client)
				log.Infof("chat client %s disconnected (user %d)", client.id, client.userID)
			}
		case message := <-h.broadcast:
			h.deliver(message)
			if h.metrics != nil {
				h.metrics.GaugeChatBroadcasts.Set(float64(len(h.broadcast)))
			}
		case <-h.done:
			for _, client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// Stop ends Run and closes every client's send channel, which makes the write
// pumps close their connections. It waits for Run to return.
func (h *Hub) Stop() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	<-h.stopped
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastMessage queues a persisted message for every connected client.
func (h *Hub) BroadcastMessage(message *models.ChatMessage) {
	out := &Message{
		Type:       "message",
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Message:    message.Message,
		Timestamp:  formatTimestamp(message.Timestamp),
	}
	select {
	case h.broadcast <- out:
	case <-h.done:
		log.Warnf("chat hub stopped, message %d not relayed", message.ID)
	}
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		log.Errorf("chat hub encode message: %s", err)
		return
	}

	for _, client := range h.clients {
		if !client.trySend(encoded) {
			log.Warnf("chat client %s too slow, dropping", client.id)
			h.drop(client)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client.id)
	client.close()
	h.updateGauge()
}

func (h *Hub) updateGauge() {
	if h.metrics != nil {
		h.metrics.GaugeChatClients.Set(float64(len(h.clients)))
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (c *Client) ReadPump(service sender) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type       string          `json:"type"`
			SenderID   json.RawMessage `json:"sender_id"`
			ReceiverID json.RawMessage `json:"receiver_id"`
			Message    string          `json:"message"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			c.writeError("invalid message payload")
			continue
		}
		if incoming.Type != "message" {
			c.writeError("unsupported message type")
			continue
		}

		senderID := c.userID
		if len(incoming.SenderID) > 0 {
			if id, ok := parseID(incoming.SenderID); !ok || id != c.userID {
				c.writeError("sender_id does not match the connected user")
				continue
			}
		}
		receiverID, ok := parseID(incoming.ReceiverID)
		if !ok {
			c.writeError("invalid receiver_id")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		_, err = service.Send(ctx, senderID, receiverID, incoming.Message)
		cancel()
		if err != nil {
			log.Debugf("chat client %s send failed: %s", c.id, err)
			c.writeError("failed to send message")
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// parseID accepts ids sent either as JSON numbers or numeric strings.
func parseID(raw json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, n > 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil && n > 0
}

func (c *Client) writeError(message string) {
	payload, err := json.Marshal(Message{
		Type:      "error",
		Message:   message,
		Timestamp: formatTimestamp(time.Now()),
	})
	if err != nil {
		return
	}
	if !c.trySend(payload) {
		c.hub.Unregister(c)
	}
}

// trySend queues payload without blocking. It reports false when the buffer is
// full or the client is already closed.
func (c *Client) trySend(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

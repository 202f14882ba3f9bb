package api

import (
	"sync"

	"github.com/battlesnakeio/arena/notify"
	"github.com/prometheus/client_golang/prometheus"
)

var droppedMessages = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "arena",
		Subsystem: "api",
		Name:      "dropped_messages_total",
		Help:      "Messages dropped because a client could not keep up.",
	},
)

var connectedClients = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "arena",
		Subsystem: "api",
		Name:      "clients",
		Help:      "Connected websocket clients.",
	},
)

func init() {
	prometheus.MustRegister(droppedMessages, connectedClients)
}

// Hub fans game messages out to the connected clients. Sends never block the
// game loop: a client whose buffer is full misses the message.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]chan notify.Message
	buffer  int
}

// NewHub returns a hub giving every client a buffer of the given size.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		clients: map[string]chan notify.Message{},
		buffer:  buffer,
	}
}

// Register creates the outgoing channel of a client, replacing any previous
// one for the same id.
func (h *Hub) Register(id string) <-chan notify.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[id]; ok {
		close(old)
	}
	ch := make(chan notify.Message, h.buffer)
	h.clients[id] = ch
	connectedClients.Set(float64(len(h.clients)))
	return ch
}

// Unregister closes the channel of a client.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[id]; ok {
		close(ch)
		delete(h.clients, id)
	}
	connectedClients.Set(float64(len(h.clients)))
}

// Broadcast sends msg to every client.
func (h *Hub) Broadcast(msg notify.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
			droppedMessages.Inc()
		}
	}
}

// SendTo sends msg to one client. It reports false when the client is not
// connected.
func (h *Hub) SendTo(id string, msg notify.Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.clients[id]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
	default:
		droppedMessages.Inc()
	}
	return true
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

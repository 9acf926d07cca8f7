// Package realtime mantiene las conexiones WebSocket abiertas y les entrega eventos.
package realtime

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/ecommerce-api/internal/domain/event"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// ErrHubClosed se devuelve al registrar una conexión después de Close.
var ErrHubClosed = errors.New("realtime: hub cerrado")

// Recorder recibe contadores de entrega. Lo implementa metrics.Metrics.
type Recorder interface {
	EventSent(eventType string)
	EventDropped(eventType string)
	SetConnections(n int)
}

type nopRecorder struct{}

func (nopRecorder) EventSent(string)    {}
func (nopRecorder) EventDropped(string) {}
func (nopRecorder) SetConnections(int)  {}

// Client cola de salida de una conexión. Los frames se entregan en orden FIFO.
type Client struct {
	ID   string
	send chan []byte
}

// Send canal de frames codificados; se cierra al desregistrar la conexión.
func (c *Client) Send() <-chan []byte { return c.send }

// Hub registro de conexiones del proceso. Se crea en main y se cierra al apagar.
// Los envíos nunca bloquean: si la cola de una conexión está llena el frame se descarta.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool

	buffer  int
	dropped atomic.Int64
	rec     Recorder
	log     *logger.Logger
}

// NewHub crea el hub. buffer es la capacidad de la cola de cada conexión.
func NewHub(buffer int, rec Recorder, log *logger.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{clients: make(map[string]*Client), buffer: buffer, rec: rec, log: log}
}

// Register agrega una conexión con id único.
func (h *Hub) Register(id string) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrHubClosed
	}
	if old, ok := h.clients[id]; ok {
		close(old.send)
	}
	c := &Client{ID: id, send: make(chan []byte, h.buffer)}
	h.clients[id] = c
	h.rec.SetConnections(len(h.clients))
	return c, nil
}

// Unregister quita la conexión y cierra su cola. Es idempotente.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(c.send)
	h.rec.SetConnections(len(h.clients))
}

// SendTo encola ev para una conexión. Devuelve false si no existe o si el frame se descartó.
func (h *Hub) SendTo(id string, ev event.Event) bool {
	frame, ok := h.encode(ev)
	if !ok {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, exists := h.clients[id]
	if !exists {
		return false
	}
	return h.enqueue(c, ev.Type(), frame)
}

// Broadcast encola ev para todas las conexiones.
func (h *Hub) Broadcast(ev event.Event) {
	h.BroadcastExcept("", ev)
}

// BroadcastExcept encola ev para todas las conexiones salvo exceptID.
func (h *Hub) BroadcastExcept(exceptID string, ev event.Event) {
	frame, ok := h.encode(ev)
	if !ok {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == exceptID {
			continue
		}
		h.enqueue(c, ev.Type(), frame)
	}
}

// Publish implementa ports.Notifier: difunde a todas las conexiones.
func (h *Hub) Publish(ev event.Event) {
	h.Broadcast(ev)
}

// Len cantidad de conexiones registradas.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped total de frames descartados por colas llenas.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Close cierra todas las colas; los registros posteriores fallan con ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
	h.rec.SetConnections(0)
}

// enqueue se llama con h.mu tomado en lectura; close(send) solo ocurre con el lock de escritura.
func (h *Hub) enqueue(c *Client, eventType string, frame []byte) bool {
	select {
	case c.send <- frame:
		h.rec.EventSent(eventType)
		return true
	default:
		h.dropped.Add(1)
		h.rec.EventDropped(eventType)
		h.log.Warn().Str("conn_id", c.ID).Str("type", eventType).Msg("cola llena, frame descartado")
		return false
	}
}

func (h *Hub) encode(ev event.Event) ([]byte, bool) {
	frame, err := event.Encode(ev)
	if err != nil {
		h.log.Error().Err(err).Str("type", ev.Type()).Msg("no se pudo codificar el evento")
		return nil, false
	}
	return frame, true
}

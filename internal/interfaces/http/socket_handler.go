package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/ecommerce-api/internal/application/chat"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/event"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/realtime"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

const (
	socketWriteWait = 10 * time.Second
	socketOpTimeout = 10 * time.Second
)

// SocketHandler canal WebSocket: chat y notificaciones del catálogo.
type SocketHandler struct {
	hub  *realtime.Hub
	chat *chat.Service
	log  *logger.Logger
}

// NewSocketHandler construye el handler.
func NewSocketHandler(hub *realtime.Hub, chatSvc *chat.Service, log *logger.Logger) *SocketHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SocketHandler{hub: hub, chat: chatSvc, log: log}
}

// Upgrade rechaza peticiones que no piden WebSocket.
func (h *SocketHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle handler de la conexión ya establecida.
func (h *SocketHandler) Handle() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *SocketHandler) serve(conn *websocket.Conn) {
	connID := uuid.NewString()
	client, err := h.hub.Register(connID)
	if err != nil {
		h.log.Warn().Err(err).Msg("conexión rechazada")
		return
	}
	log := h.log.With().Str("conn_id", connID).Logger()
	log.Debug().Msg("conexión abierta")

	done := make(chan struct{})
	go h.writePump(conn, client, done)

	defer func() {
		h.chat.Disconnect(connID)
		h.hub.Unregister(connID)
		<-done
		log.Debug().Msg("conexión cerrada")
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		ev, err := event.Decode(data)
		if err != nil {
			log.Debug().Err(err).Msg("frame ignorado")
			continue
		}
		if err := h.dispatch(connID, ev); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				log.Debug().Err(err).Str("type", ev.Type()).Msg("evento rechazado")
				continue
			}
			log.Error().Err(err).Str("type", ev.Type()).Msg("error procesando evento")
		}
	}
}

// dispatch ejecuta los eventos entrantes; los tipos salientes enviados por un cliente se ignoran.
func (h *SocketHandler) dispatch(connID string, ev event.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), socketOpTimeout)
	defer cancel()
	switch e := ev.(type) {
	case event.Announce:
		return h.chat.Announce(ctx, connID, e.UserName)
	case event.NewMessage:
		return h.chat.PostMessage(ctx, connID, e.User, e.Message)
	}
	return nil
}

// writePump escribe los frames encolados en orden; termina cuando el hub cierra la cola.
func (h *SocketHandler) writePump(conn *websocket.Conn, client *realtime.Client, done chan<- struct{}) {
	defer close(done)
	for frame := range client.Send() {
		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			// Desbloquea ReadMessage para que serve libere la conexión.
			_ = conn.Close()
			for range client.Send() {
			}
			return
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

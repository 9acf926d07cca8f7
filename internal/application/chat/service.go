// Package chat implementa la sala de chat sobre el canal en tiempo real: anuncio de nombre,
// historial, difusión de mensajes y avisos de desconexión.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/event"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// Broadcaster entrega eventos a conexiones abiertas. Lo implementa realtime.Hub.
type Broadcaster interface {
	SendTo(connID string, ev event.Event) bool
	Broadcast(ev event.Event)
	BroadcastExcept(connID string, ev event.Event)
}

// Service sala de chat. mu serializa Announce y PostMessage: quien se anuncia recibe el
// historial antes que cualquier mensaje posterior.
type Service struct {
	messages repository.MessageRepository
	hub      Broadcaster
	presence *Presence
	log      *logger.Logger
	mu       sync.Mutex
}

// NewService construye la sala con un registro de presencia propio.
func NewService(messages repository.MessageRepository, hub Broadcaster, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{messages: messages, hub: hub, presence: NewPresence(), log: log}
}

// Presence expone el registro (solo lectura para métricas y tests).
func (s *Service) Presence() *Presence { return s.presence }

// Announce registra el nombre de connID, le envía el historial completo y avisa al resto.
// Un segundo anuncio de la misma conexión solo cambia el nombre: el historial se envía una vez.
func (s *Service) Announce(ctx context.Context, connID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presence.Name(connID); ok {
		s.presence.Set(connID, name)
		s.log.Debug().Str("conn_id", connID).Str("user", name).Msg("nombre actualizado")
		return nil
	}

	history, err := s.messages.List(ctx)
	if err != nil {
		return fmt.Errorf("chat: historial: %w", err)
	}
	s.presence.Set(connID, name)

	prev := event.PreviousMessages{Messages: make([]event.ChatMessage, 0, len(history))}
	for _, m := range history {
		prev.Messages = append(prev.Messages, event.ChatMessage{User: m.User, Message: m.Text})
	}
	s.hub.SendTo(connID, prev)
	s.hub.BroadcastExcept(connID, event.NewUser{UserName: name})
	s.log.Debug().Str("conn_id", connID).Str("user", name).Int("history", len(history)).Msg("usuario anunciado")
	return nil
}

// PostMessage persiste el mensaje y lo difunde a todas las conexiones, emisor incluido.
// Si user viene vacío se usa el nombre anunciado por la conexión.
func (s *Service) PostMessage(ctx context.Context, connID, user, text string) error {
	text = strings.TrimSpace(text)
	user = strings.TrimSpace(user)
	if text == "" {
		return fmt.Errorf("%w: mensaje vacío", domain.ErrInvalidInput)
	}
	if user == "" {
		user, _ = s.presence.Name(connID)
	}
	if user == "" {
		return fmt.Errorf("%w: usuario no anunciado", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &entity.Message{User: user, Text: text, CreatedAt: time.Now()}
	if err := s.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("chat: guardar mensaje: %w", err)
	}
	s.hub.Broadcast(event.SendMessage{User: user, Message: text})
	return nil
}

// Disconnect olvida connID. Solo se avisa al resto si la conexión se había anunciado.
func (s *Service) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.presence.Remove(connID)
	if !ok || name == "" {
		return
	}
	s.hub.Broadcast(event.UserDisconnected{UserName: name})
	s.log.Debug().Str("conn_id", connID).Str("user", name).Msg("usuario desconectado")
}

package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo mensajes del chat en memoria, append-only.
type MessageRepo struct {
	mu   sync.RWMutex
	msgs []*entity.Message
}

// NewMessageRepository crea el almacén vacío.
func NewMessageRepository() *MessageRepo { return &MessageRepo{} }

// Create agrega un mensaje.
func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.ID = primitive.NewObjectID().Hex()
	cp := *m
	r.mu.Lock()
	r.msgs = append(r.msgs, &cp)
	r.mu.Unlock()
	return nil
}

// List devuelve los mensajes en orden de inserción.
func (r *MessageRepo) List(_ context.Context) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Message, 0, len(r.msgs))
	for _, m := range r.msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// MessageRepository persistencia append-only de mensajes del chat.
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// List devuelve todos los mensajes en orden de inserción.
	List(ctx context.Context) ([]*entity.Message, error)
}

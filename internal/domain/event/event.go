// Package event define los mensajes del canal en tiempo real como una unión tipada y
// versionada. Cada mensaje viaja dentro de un Envelope {v, type, payload}.
package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Version versión actual del formato de Envelope.
const Version = 1

// Tipos de evento. Entrantes: TypeAnnounce, TypeNewMessage. El resto son salientes.
const (
	TypeAnnounce         = "id"
	TypeNewMessage       = "newMessage"
	TypePreviousMessages = "previousMessages"
	TypeNewUser          = "newUser"
	TypeSendMessage      = "sendMessage"
	TypeUserDisconnected = "userDisconnected"
	TypeNewProduct       = "newProduct"
	TypeDeletedProduct   = "deletedProduct"
)

var (
	ErrUnknownType        = errors.New("event: tipo desconocido")
	ErrUnsupportedVersion = errors.New("event: versión no soportada")
)

// Event cualquier mensaje del canal.
type Event interface{ Type() string }

// Announce el cliente anuncia su nombre visible.
type Announce struct {
	UserName string `json:"userName"`
}

func (Announce) Type() string { return TypeAnnounce }

// NewMessage el cliente envía un mensaje al chat.
type NewMessage struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

func (NewMessage) Type() string { return TypeNewMessage }

// ChatMessage mensaje persistido tal como se reenvía a los clientes.
type ChatMessage struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// PreviousMessages historial completo, solo para el cliente que se acaba de anunciar.
type PreviousMessages struct {
	Messages []ChatMessage `json:"messages"`
}

func (PreviousMessages) Type() string { return TypePreviousMessages }

// NewUser aviso de un usuario que se unió al chat.
type NewUser struct {
	UserName string `json:"userName"`
}

func (NewUser) Type() string { return TypeNewUser }

// SendMessage mensaje de chat difundido.
type SendMessage struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

func (SendMessage) Type() string { return TypeSendMessage }

// UserDisconnected aviso de un usuario anunciado que se desconectó.
type UserDisconnected struct {
	UserName string `json:"userName"`
}

func (UserDisconnected) Type() string { return TypeUserDisconnected }

// NewProduct se creó un producto.
type NewProduct struct {
	Title string `json:"title"`
}

func (NewProduct) Type() string { return TypeNewProduct }

// ProductSnapshot vista de un producto dentro de DeletedProduct.
type ProductSnapshot struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
	Code        string          `json:"code"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

// DeletedProduct se eliminó un producto; lleva el catálogo ya actualizado.
type DeletedProduct struct {
	Products []ProductSnapshot `json:"products"`
}

func (DeletedProduct) Type() string { return TypeDeletedProduct }

// Envelope formato de cable de todos los eventos.
type Envelope struct {
	V       int             `json:"v"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Encode serializa ev dentro de un Envelope de la versión actual.
func Encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("event: serializar %s: %w", ev.Type(), err)
	}
	return json.Marshal(Envelope{V: Version, Type: ev.Type(), Payload: payload})
}

// Decode interpreta un Envelope y devuelve el evento concreto.
func Decode(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("event: envelope inválido: %w", err)
	}
	if env.V != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.V)
	}
	var ev Event
	switch env.Type {
	case TypeAnnounce:
		ev = &Announce{}
	case TypeNewMessage:
		ev = &NewMessage{}
	case TypePreviousMessages:
		ev = &PreviousMessages{}
	case TypeNewUser:
		ev = &NewUser{}
	case TypeSendMessage:
		ev = &SendMessage{}
	case TypeUserDisconnected:
		ev = &UserDisconnected{}
	case TypeNewProduct:
		ev = &NewProduct{}
	case TypeDeletedProduct:
		ev = &DeletedProduct{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, ev); err != nil {
			return nil, fmt.Errorf("event: payload de %s: %w", env.Type, err)
		}
	}
	return deref(ev), nil
}

func deref(ev Event) Event {
	switch e := ev.(type) {
	case *Announce:
		return *e
	case *NewMessage:
		return *e
	case *PreviousMessages:
		return *e
	case *NewUser:
		return *e
	case *SendMessage:
		return *e
	case *UserDisconnected:
		return *e
	case *NewProduct:
		return *e
	case *DeletedProduct:
		return *e
	}
	return ev
}

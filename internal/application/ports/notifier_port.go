package ports

import "github.com/jhoicas/ecommerce-api/internal/domain/event"

// Notifier define el puerto de salida para difundir eventos en tiempo real.
// La implementación (realtime.Hub) entrega el evento a todas las conexiones abiertas;
// es fire-and-forget y nunca bloquea al llamador.
type Notifier interface {
	Publish(ev event.Event)
}

// NopNotifier descarta los eventos. Útil cuando no hay canal en tiempo real (p. ej. cmd/seed).
type NopNotifier struct{}

// Publish implementa Notifier.
func (NopNotifier) Publish(event.Event) {}

package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/chat"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/event"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/realtime"
)

// drain devuelve los eventos encolados para c sin bloquear.
func drain(t *testing.T, c *realtime.Client) []event.Event {
	t.Helper()
	var out []event.Event
	for {
		select {
		case frame, ok := <-c.Send():
			if !ok {
				return out
			}
			ev, err := event.Decode(frame)
			require.NoError(t, err)
			out = append(out, ev)
		default:
			return out
		}
	}
}

func setup(t *testing.T) (*chat.Service, *realtime.Hub, *memory.MessageRepo) {
	t.Helper()
	hub := realtime.NewHub(16, nil, nil)
	t.Cleanup(hub.Close)
	repo := memory.NewMessageRepository()
	return chat.NewService(repo, hub, nil), hub, repo
}

func register(t *testing.T, hub *realtime.Hub, id string) *realtime.Client {
	t.Helper()
	c, err := hub.Register(id)
	require.NoError(t, err)
	return c
}

func TestAnnounce_EnviaHistorialYAvisaAlResto(t *testing.T) {
	svc, hub, _ := setup(t)
	ctx := context.Background()
	a := register(t, hub, "a")
	b := register(t, hub, "b")

	require.NoError(t, svc.Announce(ctx, "a", "ana"))
	require.NoError(t, svc.PostMessage(ctx, "a", "ana", "hola"))
	drain(t, a)
	drain(t, b)

	require.NoError(t, svc.Announce(ctx, "b", "beto"))

	gotB := drain(t, b)
	require.Len(t, gotB, 1)
	assert.Equal(t, event.PreviousMessages{Messages: []event.ChatMessage{{User: "ana", Message: "hola"}}}, gotB[0])

	gotA := drain(t, a)
	assert.Equal(t, []event.Event{event.NewUser{UserName: "beto"}}, gotA)
}

func TestAnnounce_NombreVacio(t *testing.T) {
	svc, hub, _ := setup(t)
	register(t, hub, "a")

	err := svc.Announce(context.Background(), "a", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, svc.Presence().Len())
}

func TestPostMessage_PersisteYDifundeATodasLasConexiones(t *testing.T) {
	svc, hub, repo := setup(t)
	ctx := context.Background()
	a := register(t, hub, "a")
	b := register(t, hub, "b")
	anon := register(t, hub, "anon")
	require.NoError(t, svc.Announce(ctx, "a", "ana"))
	require.NoError(t, svc.Announce(ctx, "b", "beto"))
	drain(t, a)
	drain(t, b)
	drain(t, anon)

	require.NoError(t, svc.PostMessage(ctx, "a", "", "buenas"))

	want := []event.Event{event.SendMessage{User: "ana", Message: "buenas"}}
	assert.Equal(t, want, drain(t, a))
	assert.Equal(t, want, drain(t, b))
	assert.Equal(t, want, drain(t, anon), "las conexiones sin anunciar también reciben el mensaje")

	msgs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "ana", msgs[0].User)
	assert.Equal(t, "buenas", msgs[0].Text)
}

func TestPostMessage_EmisorSinAnunciarRecibeSuMensaje(t *testing.T) {
	svc, hub, _ := setup(t)
	c := register(t, hub, "c")

	require.NoError(t, svc.PostMessage(context.Background(), "c", "carla", "hola"))
	assert.Equal(t, []event.Event{event.SendMessage{User: "carla", Message: "hola"}}, drain(t, c))
}

func TestPostMessage_Invalido(t *testing.T) {
	svc, hub, repo := setup(t)
	register(t, hub, "a")
	ctx := context.Background()

	assert.ErrorIs(t, svc.PostMessage(ctx, "a", "ana", "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.PostMessage(ctx, "a", "", "hola"), domain.ErrInvalidInput)

	msgs, _ := repo.List(ctx)
	assert.Empty(t, msgs)
}

func TestDisconnect_SoloAvisaSiEstabaAnunciado(t *testing.T) {
	svc, hub, _ := setup(t)
	ctx := context.Background()
	a := register(t, hub, "a")
	register(t, hub, "b")
	register(t, hub, "c")
	require.NoError(t, svc.Announce(ctx, "b", "beto"))
	drain(t, a)

	svc.Disconnect("c")
	assert.Empty(t, drain(t, a))

	svc.Disconnect("b")
	assert.Equal(t, []event.Event{event.UserDisconnected{UserName: "beto"}}, drain(t, a))
	assert.Equal(t, 0, svc.Presence().Len())

	svc.Disconnect("b")
	assert.Empty(t, drain(t, a))
}

func TestAnnounce_RepetidoNoReenviaHistorial(t *testing.T) {
	svc, hub, _ := setup(t)
	ctx := context.Background()
	a := register(t, hub, "a")
	b := register(t, hub, "b")
	require.NoError(t, svc.Announce(ctx, "a", "ana"))
	require.NoError(t, svc.PostMessage(ctx, "a", "", "hola"))
	drain(t, a)
	drain(t, b)

	require.NoError(t, svc.Announce(ctx, "a", "ana maría"))

	assert.Empty(t, drain(t, a), "el historial se recibe una sola vez")
	assert.Empty(t, drain(t, b), "no se repite newUser")
	name, ok := svc.Presence().Name("a")
	require.True(t, ok)
	assert.Equal(t, "ana maría", name)

	require.NoError(t, svc.PostMessage(ctx, "a", "", "otra vez"))
	assert.Equal(t, []event.Event{event.SendMessage{User: "ana maría", Message: "otra vez"}}, drain(t, b))
}

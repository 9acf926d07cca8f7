package event_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain/event"
)

func TestEncode_EnvelopeVersionado(t *testing.T) {
	raw, err := event.Encode(event.NewUser{UserName: "ana"})
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, `1`, string(env["v"]))
	assert.JSONEq(t, `"newUser"`, string(env["type"]))
	assert.JSONEq(t, `{"userName":"ana"}`, string(env["payload"]))
}

func TestDecode_EventosEntrantes(t *testing.T) {
	ev, err := event.Decode([]byte(`{"v":1,"type":"id","payload":{"userName":"ana"}}`))
	require.NoError(t, err)
	assert.Equal(t, event.Announce{UserName: "ana"}, ev)

	ev, err = event.Decode([]byte(`{"v":1,"type":"newMessage","payload":{"user":"ana","message":"hola"}}`))
	require.NoError(t, err)
	assert.Equal(t, event.NewMessage{User: "ana", Message: "hola"}, ev)
}

func TestDecode_DeletedProduct(t *testing.T) {
	raw, err := event.Encode(event.DeletedProduct{Products: []event.ProductSnapshot{
		{ID: "1", Title: "Taza", Price: decimal.RequireFromString("7.5"), Code: "HOG-001", Stock: 3, Category: "hogar"},
	}})
	require.NoError(t, err)

	ev, err := event.Decode(raw)
	require.NoError(t, err)
	got, ok := ev.(event.DeletedProduct)
	require.True(t, ok)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Taza", got.Products[0].Title)
	assert.True(t, got.Products[0].Price.Equal(decimal.RequireFromString("7.5")))
}

func TestDecode_Errores(t *testing.T) {
	_, err := event.Decode([]byte(`no es json`))
	assert.Error(t, err)

	_, err = event.Decode([]byte(`{"v":2,"type":"id","payload":{}}`))
	assert.ErrorIs(t, err, event.ErrUnsupportedVersion)

	_, err = event.Decode([]byte(`{"v":1,"type":"desconocido","payload":{}}`))
	assert.ErrorIs(t, err, event.ErrUnknownType)

	_, err = event.Decode([]byte(`{"v":1,"type":"id","payload":"texto"}`))
	assert.Error(t, err)
}

func TestRoundTrip_TodosLosTipos(t *testing.T) {
	events := []event.Event{
		event.Announce{UserName: "a"},
		event.NewMessage{User: "a", Message: "m"},
		event.PreviousMessages{Messages: []event.ChatMessage{{User: "a", Message: "m"}}},
		event.NewUser{UserName: "a"},
		event.SendMessage{User: "a", Message: "m"},
		event.UserDisconnected{UserName: "a"},
		event.NewProduct{Title: "t"},
	}
	for _, ev := range events {
		raw, err := event.Encode(ev)
		require.NoError(t, err)
		got, err := event.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, ev, got, ev.Type())
	}
}

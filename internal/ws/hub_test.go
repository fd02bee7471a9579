package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedEvent struct {
	userID uuid.UUID
	event  string
}

type chanSaver chan savedEvent

func (s chanSaver) CreateNotification(ctx context.Context, userID uuid.UUID, event string, data interface{}) error {
	s <- savedEvent{userID: userID, event: event}
	return nil
}

func TestHub_BroadcastToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(ctx)
	saver := make(chanSaver, 1)
	hub.SetNotificationSaver(saver)
	go hub.Run()

	userID := uuid.New()
	client := &Client{hub: hub, userID: userID, send: make(chan []byte, 1)}
	hub.Register(client)

	require.NoError(t, hub.BroadcastToUser(userID, "offers.new", map[string]string{"id": "42"}))

	select {
	case raw := <-client.send:
		var envelope struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "offers.new", envelope.Type)
		assert.Equal(t, "42", envelope.Data["id"])
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
	}

	select {
	case saved := <-saver:
		assert.Equal(t, userID, saved.userID)
		assert.Equal(t, "offers.new", saved.event)
	case <-time.After(time.Second):
		t.Fatal("уведомление не сохранено")
	}

	assert.Equal(t, 1, hub.ConnectedUsers())
}

func TestHub_OtherUsersDoNotReceive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(ctx)
	go hub.Run()

	client := &Client{hub: hub, userID: uuid.New(), send: make(chan []byte, 1)}
	hub.Register(client)

	require.NoError(t, hub.BroadcastToUser(uuid.New(), "payments.paid", nil))

	select {
	case <-client.send:
		t.Fatal("событие доставлено чужому пользователю")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_BroadcastAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(ctx)
	cancel()

	for i := 0; i < cap(hub.broadcast); i++ {
		hub.broadcast <- message{}
	}
	assert.ErrorIs(t, hub.BroadcastToUser(uuid.New(), "offers.new", nil), context.Canceled)
}

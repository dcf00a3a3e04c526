package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/protocol"
)

// attach registers a connectionless client so tests can read its queue.
func attach(t *testing.T, h *Hub, buffer int) *Client {
	t.Helper()
	c := newClient(h, nil)
	c.send = make(chan Message, buffer)
	h.register <- c
	return c
}

func receive(t *testing.T, c *Client) (Message, bool) {
	t.Helper()
	select {
	case m, ok := <-c.send:
		return m, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}, false
	}
}

func TestHub_PublishFansOut(t *testing.T) {
	h := New("test")
	go h.Run()
	defer h.Stop()

	a := attach(t, h, 4)
	b := attach(t, h, 4)
	assert.Eventually(t, func() bool { return h.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	msg, err := protocol.NewMessage(protocol.TypeTeleport, protocol.TeleportData{ID: "x"})
	require.NoError(t, err)
	h.Publish(msg)

	for _, c := range []*Client{a, b} {
		got, ok := receive(t, c)
		require.True(t, ok)
		assert.Equal(t, protocol.TypeTeleport, got.Type)

		parsed, err := protocol.ParseMessage(got.Data)
		require.NoError(t, err)
		var data protocol.TeleportData
		require.NoError(t, parsed.ParseData(&data))
		assert.Equal(t, "x", data.ID)
	}
}

func TestHub_WelcomeGoesFirst(t *testing.T) {
	h := New("test")
	h.Welcome = func() (*protocol.Message, error) {
		return protocol.NewMessage(protocol.TypeSession, protocol.SessionData{Active: true})
	}
	go h.Run()
	defer h.Stop()

	c := attach(t, h, 4)
	got, ok := receive(t, c)
	require.True(t, ok)
	assert.Equal(t, protocol.TypeSession, got.Type)
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := New("test")
	go h.Run()
	defer h.Stop()

	slow := attach(t, h, 1)
	h.Broadcast(Message{Type: protocol.TypeFrame, Data: []byte("{}")})
	h.Broadcast(Message{Type: protocol.TypeFrame, Data: []byte("{}")})

	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := receive(t, slow)
	assert.True(t, ok)
	_, ok = receive(t, slow)
	assert.False(t, ok, "slow client's queue should be closed")
}

func TestHub_UnregisterAndStop(t *testing.T) {
	h := New("test")
	go h.Run()

	c := attach(t, h, 4)
	assert.Eventually(t, h.IsRunning, time.Second, 5*time.Millisecond)

	h.unregister <- c
	_, ok := receive(t, c)
	assert.False(t, ok)
	assert.Equal(t, 0, h.ClientCount())

	h.Stop()
	h.Stop()
	assert.Eventually(t, func() bool { return !h.IsRunning() }, time.Second, 5*time.Millisecond)

	_, registered := NewClient(h, nil)
	assert.False(t, registered)
}

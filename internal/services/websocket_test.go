package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHubDropsSlowClientOnBroadcast(t *testing.T) {
	hub := NewWebSocketHub()
	go hub.Run()

	// Unbuffered send channel with no reader: the first broadcast cannot be
	// delivered and the hub must drop the client.
	client := &Client{hub: hub, send: make(chan []byte), id: "slow"}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)

	// Hammer the counter while the broadcast removes the client.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.ClientCount()
		}
	}()

	require.NoError(t, hub.Broadcast("simulation_update", map[string]int{"n": 1}))
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 5*time.Millisecond)
	<-done

	_, open := <-client.send
	require.False(t, open)
}

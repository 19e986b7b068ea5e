package connectionhub

import (
	"sync"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"

	wsmodels "ops-portal-backend/models/ws"
)

func TestSendMessageDuringDisconnect(t *testing.T) {
	hub := &impl{clients: map[string]clientSession{}}
	for n := 0; n < 200; n++ {
		hub.AddClient("u1", &websocket.Conn{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Msg: "ping"})
		}()
		go func() {
			defer wg.Done()
			hub.DeleteClient("u1")
		}()
		wg.Wait()
		require.False(t, hub.IsConnected("u1"))
	}
}

func TestSendMessageUnknownClient(t *testing.T) {
	hub := &impl{clients: map[string]clientSession{}}
	hub.SendMessage(wsmodels.ServerMessage{ToUserID: "nobody", Msg: "ping"})
	require.False(t, hub.IsConnected("nobody"))
}

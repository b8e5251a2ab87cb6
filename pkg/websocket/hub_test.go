package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		userID := uint64(1)
		if r.URL.Query().Get("user") == "2" {
			userID = 2
		}
		client := NewClient(hub, conn, userID)
		if !hub.Register(client) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientsCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv, "user=1")
	b := dial(t, srv, "user=2")
	waitClients(t, hub, 2)

	require.NoError(t, hub.Broadcast("request.created", map[string]uint64{"requestId": 5}))

	for _, conn := range []*websocket.Conn{a, b} {
		env := readEnvelope(t, conn)
		assert.Equal(t, "request.created", env.Type)
		assert.Equal(t, map[string]interface{}{"requestId": float64(5)}, env.Payload)
	}
}

func TestSendMessageToUserTargetsOneUser(t *testing.T) {
	hub, srv := startHub(t)
	_ = dial(t, srv, "user=1")
	target := dial(t, srv, "user=2")
	waitClients(t, hub, 2)

	require.NoError(t, hub.SendMessageToUser(2, "привет", "request.assigned_to_you"))

	env := readEnvelope(t, target)
	assert.Equal(t, "request.assigned_to_you", env.Type)
	assert.Equal(t, "привет", env.Payload)
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "user=1")
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestStoppedHubDoesNotBlockRegistration(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	client := &Client{Hub: hub, Send: make(chan []byte, 1), UserID: 1}
	finished := make(chan bool, 1)
	go func() {
		hub.Unregister(client)
		finished <- hub.Register(client)
	}()

	select {
	case registered := <-finished:
		assert.False(t, registered)
	case <-time.After(2 * time.Second):
		t.Fatal("Register/Unregister зависли после остановки хаба")
	}
	assert.Equal(t, 0, hub.ClientsCount())
}

func TestShutdownReleasesConnectedClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	pumpsDone := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, 1)
		if !assert.True(t, hub.Register(client)) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go func() {
			client.ReadPump()
			close(pumpsDone)
		}()
	}))
	t.Cleanup(srv.Close)

	_ = dial(t, srv, "user=1")
	waitClients(t, hub, 1)

	cancel()
	<-stopped

	// WritePump закрывает соединение, ReadPump выходит и отписывается без блокировки.
	select {
	case <-pumpsDone:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadPump не завершился после остановки хаба")
	}
	assert.Equal(t, 0, hub.ClientsCount())
}

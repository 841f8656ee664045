package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardTracker/internal/auth"
	"boardTracker/internal/ws"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func wsURL(server *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	return url
}

// TestManager_Handshake тестирует проверку токена до апгрейда
func TestManager_Handshake(t *testing.T) {
	manager := ws.NewManager(secret)
	server := httptest.NewServer(http.HandlerFunc(manager.Handle))
	defer server.Close()

	t.Run("valid token connects", func(t *testing.T) {
		token, err := auth.GenerateToken(secret, uuid.New(), time.Hour)
		require.NoError(t, err)

		conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
		require.NoError(t, err)
		defer conn.Close()

		// регистрация на сервере завершается чуть позже хендшейка
		assert.Eventually(t, func() bool {
			return manager.ConnectedUsers() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, ""), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, "garbage"), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

// TestManager_SendToUser тестирует адресную доставку события
func TestManager_SendToUser(t *testing.T) {
	manager := ws.NewManager(secret)
	server := httptest.NewServer(http.HandlerFunc(manager.Handle))
	defer server.Close()

	userID := uuid.New()
	otherID := uuid.New()

	dial := func(t *testing.T, id uuid.UUID) *websocket.Conn {
		t.Helper()

		token, err := auth.GenerateToken(secret, id, time.Hour)
		require.NoError(t, err)

		conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
		require.NoError(t, err)
		return conn
	}

	target := dial(t, userID)
	defer target.Close()
	bystander := dial(t, otherID)
	defer bystander.Close()

	require.Eventually(t, func() bool {
		return manager.ConnectedUsers() == 2
	}, time.Second, 10*time.Millisecond)

	manager.SendToUser(userID, "new-notification", map[string]string{"message": "La tarea Informe, finaliza en 5 minutos"})

	var received struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	target.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, target.ReadJSON(&received))

	assert.Equal(t, "new-notification", received.Type)
	assert.Contains(t, received.Payload["message"], "finaliza")

	// постороннему ничего не приходит
	bystander.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err)

	// отправка несуществующему пользователю не паникует
	manager.SendToUser(uuid.New(), "new-notification", nil)
}

package ws

import (
	"net/http"
	"sync"

	"boardTracker/internal/auth"
	"boardTracker/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Manager — реестр живых соединений по id пользователя. Создаётся один раз
// на старте и передаётся явно всем, кто публикует события.
type Manager struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID][]*client
	upgrader websocket.Upgrader
	secret   []byte
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // только один писатель на соединение
}

type message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func NewManager(secret []byte) *Manager {
	return &Manager{
		clients: make(map[uuid.UUID][]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		secret: secret,
	}
}

// Handle — точка входа /ws: токен из хендшейка валидируется до апгрейда,
// при успехе соединение регистрируется за пользователем до закрытия.
func (m *Manager) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	userID, err := auth.ParseToken(m.secret, token)
	if err != nil {
		logger.Warn("WS: Невалидный токен хендшейка", zap.String("client_ip", r.RemoteAddr))
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WS: Ошибка апгрейда", zap.Error(err))
		return
	}

	c := &client{conn: conn}
	m.register(userID, c)
	logger.Info("WS: Клиент подключён", zap.String("user_id", userID.String()))

	// читаем до закрытия, входящие сообщения не обрабатываем
	go func() {
		defer func() {
			m.deregister(userID, c)
			conn.Close()
			logger.Info("WS: Клиент отключён", zap.String("user_id", userID.String()))
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (m *Manager) register(userID uuid.UUID, c *client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[userID] = append(m.clients[userID], c)
}

func (m *Manager) deregister(userID uuid.UUID, c *client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns := m.clients[userID]
	for i, existing := range conns {
		if existing == c {
			m.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.clients[userID]) == 0 {
		delete(m.clients, userID)
	}
}

// SendToUser доставляет событие во все открытые соединения пользователя;
// если соединений нет — тихо ничего не делает.
func (m *Manager) SendToUser(userID uuid.UUID, msgType string, payload any) {
	m.mu.RLock()
	conns := make([]*client, len(m.clients[userID]))
	copy(conns, m.clients[userID])
	m.mu.RUnlock()

	for _, c := range conns {
		c.mu.Lock()
		err := c.conn.WriteJSON(message{Type: msgType, Payload: payload})
		c.mu.Unlock()

		if err != nil {
			logger.Warn("WS: Ошибка отправки",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}
}

// ConnectedUsers — количество пользователей с живыми соединениями
func (m *Manager) ConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

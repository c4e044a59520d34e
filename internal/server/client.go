package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"skirmish-server/internal/engine"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Service
type Client struct {
	Game     *engine.Service
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	ClientID string
}

func NewClient(game *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.ClientID != "" {
			c.Game.Hub.Unregister(c.ClientID)
			logger.Log.WithField("client_id", c.ClientID).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE
	var hello api.ClientCommand
	if err := c.Conn.ReadJSON(&hello); err != nil {
		logger.Log.Warn("Handshake failed")
		close(c.Send)
		return
	}

	c.ClientID = hello.Token
	if c.ClientID != "" && c.Game.Hub.HasSubscriber(c.ClientID) {
		// Токен уже занят живым соединением: выдаем новый, старое не трогаем
		logger.Log.WithField("client_id", c.ClientID).Warn("Client token already connected, issuing a new one")
		c.ClientID = ""
	}
	if c.ClientID == "" {
		c.ClientID = uuid.NewString()
	}
	logger.Log.WithFields(logrus.Fields{
		"client_id": c.ClientID,
		"remote":    c.Conn.RemoteAddr().String(),
	}).Info("Client connected")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Game.Hub.Register(c.ClientID)

	// Запускаем пересылку обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			select {
			case c.Send <- msg:
			default:
				// клиент не успевает, следующий снимок все равно полный
			}
		}
		close(c.Send)
	}()

	// Отправляем INIT (триггер первой отрисовки)
	c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.ClientID})
	if hello.Action != "" && hello.Action != "INIT" {
		hello.Token = c.ClientID
		c.Game.ProcessCommand(hello)
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		cmd.Token = c.ClientID
		c.Game.ProcessCommand(cmd)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/realtime"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене нужно проверять origin
	},
}

type WebSocketHandler struct {
	gateway *realtime.Gateway
	log     logger.Logger
}

func NewWebSocketHandler(gateway *realtime.Gateway, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		gateway: gateway,
		log:     log,
	}
}

// HandleChat переводит HTTP-запрос в websocket и отдает соединение шлюзу.
// Блокируется до разрыва соединения.
func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	h.gateway.HandleConnection(conn)
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/live"
)

type WebsocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebsocketHandler(hub *live.Hub, logger *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{hub: hub, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Subscribe upgrades the connection and joins the bolão's room. The client
// receives MATCH_UPDATED, CHAMPION_UPDATED and RANKING_CHANGED events until
// it disconnects.
func (h *WebsocketHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	bolaoID, err := idFromURL(r, "bolaoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	room := fmt.Sprintf("bolao_%d", bolaoID)
	client := live.NewClient(h.hub, conn, room)
	h.hub.Register(client)
}

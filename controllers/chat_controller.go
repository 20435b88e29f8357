package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	Chat *services.ChatService
	Hub  *services.ChatHub
}

func NewChatController(chat *services.ChatService, hub *services.ChatHub) *ChatController {
	return &ChatController{Chat: chat, Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

func (cc *ChatController) Send(c *gin.Context) {
	uid := c.GetUint("userID")
	peerID, err := strconv.ParseUint(c.Param("peerId"), 10, 32)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" && req.FileURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	}

	msg, err := cc.Chat.SendMessage(uid, uint(peerID), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (cc *ChatController) History(c *gin.Context) {
	uid := c.GetUint("userID")
	peerID, err := strconv.ParseUint(c.Param("peerId"), 10, 32)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}

	feed, err := cc.Chat.History(uid, uint(peerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ChatWS upgrades to a websocket and streams chat events for the user until
// the client goes away.
func (cc *ChatController) ChatWS(c *gin.Context) {
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	cc.Hub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cc.Hub.Unregister(cl)
			return
		}
	}
}

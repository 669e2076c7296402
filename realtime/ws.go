package realtime

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// joinMessage is what connected clients send to subscribe to rooms,
// mirroring the kiosk frontend's join-admin/join-kitchen/join-order calls.
type joinMessage struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId,omitempty"`
}

// ServeWS upgrades the connection and pumps hub events to the socket.
// Clients start with no subscriptions and send join messages to opt in.
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Printf("realtime: accept: %v", err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "closed")

		client := hub.NewClient()
		defer hub.Close(client)

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// writer: hub -> socket
		go func() {
			for msg := range client.Receive() {
				if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
					cancel()
					return
				}
			}
		}()

		// reader: join messages from the client until disconnect
		for {
			var msg joinMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				return
			}
			switch msg.Type {
			case "join-admin":
				hub.Join(RoomAdmin, client)
			case "join-kitchen":
				hub.Join(RoomKitchen, client)
			case "join-order":
				if msg.OrderID != "" {
					hub.Join(OrderRoom(msg.OrderID), client)
				}
			}
		}
	}
}

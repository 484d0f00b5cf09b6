package session

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxCommandSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	id    string
	conn  *websocket.Conn
	codec Codec
	send  chan []byte
}

// ServeWS upgrades the request and attaches the connection to the session.
// The codec is taken from the codec query parameter.
func (s *Session) ServeWS(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecFor(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] %s: upgrade: %v", s.ID, err)
		return
	}

	c := &client{
		id:    uuid.NewString(),
		conn:  conn,
		codec: codec,
		send:  make(chan []byte, sendBuffer),
	}
	if !s.join(c) {
		log.Printf("[WS] %s: refusing client %s, session closed", s.ID, c.id)
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Session) readPump(c *client) {
	defer func() {
		s.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxCommandSize)

	for {
		frameType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] %s: read: %v", s.ID, err)
			}
			return
		}

		var cmd Command
		if err := codecForFrame(frameType).Unmarshal(message, &cmd); err != nil {
			log.Printf("[WS] %s: bad command from %s: %v", s.ID, c.id, err)
			continue
		}
		if reply := s.handle(cmd); reply != nil {
			s.deliver(c, reply)
		}
	}
}

func (s *Session) writePump(c *client) {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(c.codec.FrameType(), message); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

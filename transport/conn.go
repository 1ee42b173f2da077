package transport

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/FelixGerberding/tank-arena/server"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

var errSendBufferFull = errors.New("transport: send buffer full")

// Conn adapts a *websocket.Conn to server.Session and server.WriteHandle.
// Reads happen on the caller's goroutine via ReadFrame; writes are
// funneled through a buffered channel drained by its own pump so a
// slow peer never blocks the scheduler's fan-out.
type Conn struct {
	ws        *websocket.Conn
	peerID    string
	lobbyID   uuid.UUID
	send      chan []byte
	closeOnce sync.Once
}

func newConn(ws *websocket.Conn, peerID string, lobbyID uuid.UUID) *Conn {
	return &Conn{
		ws:      ws,
		peerID:  peerID,
		lobbyID: lobbyID,
		send:    make(chan []byte, 256),
	}
}

// PeerID implements server.Session.
func (c *Conn) PeerID() string { return c.peerID }

// LobbyID implements server.Session.
func (c *Conn) LobbyID() uuid.UUID { return c.lobbyID }

// WriteText implements server.WriteHandle by enqueueing a frame for
// writePump; a full buffer means the peer isn't draining, so the
// frame is dropped rather than blocking the fan-out.
func (c *Conn) WriteText(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

// Close implements server.WriteHandle. Idempotent: the Message Router
// calls it exactly once on cleanup, but closing the read side
// independently (on a read error) must not panic a second call.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.ws.Close()
	})
}

// ReadFrame implements server.Session: blocks for the next frame,
// silently retrying on JSON decode failures so a single malformed
// frame never closes the connection.
func (c *Conn) ReadFrame() (server.ClientFrame, error) {
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return server.ClientFrame{}, err
		}

		frame, decodeErr := server.DecodeFrame(raw)
		if decodeErr != nil {
			log.Printf("transport: dropping malformed frame from %s: %v", c.peerID, decodeErr)
			continue
		}
		return frame, nil
	}
}

// startReadDeadline arms the pong-based liveness check before the
// message router starts reading frames.
func (c *Conn) startReadDeadline() {
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}

// writePump drains the send channel and pings an otherwise idle
// connection to keep it alive.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

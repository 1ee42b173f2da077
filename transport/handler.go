package transport

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/FelixGerberding/tank-arena/game"
	"github.com/FelixGerberding/tank-arena/lobby"
	"github.com/FelixGerberding/tank-arena/server"
)

// isValidOrigin allows same-origin and localhost unconditionally,
// rejects cross-origin browser connections, and passes through
// non-browser clients that send no Origin header at all.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		log.Printf("transport: invalid origin header %q", origin)
		return false
	}

	if r.Host == originURL.Host {
		return true
	}
	if strings.HasPrefix(originURL.Host, "localhost:") || strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" || originURL.Host == "127.0.0.1" {
		return true
	}

	log.Printf("transport: rejected websocket connection from origin %s", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// Handler is the client transport's single HTTP entry point, mounted
// at the bare root of the client-transport listener; the lobby id is
// parsed out of the path itself rather than routed.
type Handler struct {
	directory *lobby.Directory
	registry  *server.Registry
	router    *server.Router
}

// NewHandler wires a transport Handler to the lobbies directory,
// connection registry, and message router it admits connections into.
func NewHandler(directory *lobby.Directory, registry *server.Registry, router *server.Router) *Handler {
	return &Handler{directory: directory, registry: registry, router: router}
}

// ServeHTTP upgrades the connection, admits it, and hands
// steady-state framing off to the message router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade failed: %v", err)
		return
	}

	adm, err := admit(r.URL.Path, r.URL.RawQuery, h.directory)
	if err != nil {
		closeWithReason(ws, err.Error())
		return
	}

	l, ok := h.directory.Get(adm.lobbyID)
	if !ok {
		// admit already confirmed the lobby existed; nothing deletes
		// lobbies, so this is unreachable in practice.
		closeWithReason(ws, game.ErrLobbyNotFound(adm.lobbyID.String()).Error())
		return
	}

	peerID := uuid.New().String()
	hello, err := l.AddClient(peerID, adm.kind, adm.username)
	if err != nil {
		closeWithReason(ws, err.Error())
		return
	}

	conn := newConn(ws, peerID, adm.lobbyID)
	h.registry.Register(peerID, conn)
	go conn.writePump()
	conn.startReadDeadline()

	if hello != nil {
		payload, marshalErr := json.Marshal(hello)
		if marshalErr != nil {
			log.Printf("transport: failed to encode hello for %s: %v", peerID, marshalErr)
		} else {
			conn.WriteText(payload)
		}
	}

	h.router.Serve(conn)
}

// closeWithReason sends a normal-closure control frame carrying one
// of the canonical admission error strings, then tears the
// connection down.
func closeWithReason(ws *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	ws.Close()
}

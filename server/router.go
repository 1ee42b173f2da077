package server

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/FelixGerberding/tank-arena/game"
)

// Session is everything the Message Router needs about one accepted
// connection; *transport.Conn satisfies it alongside WriteHandle.
// Kept as an interface so server never imports transport, matching
// the dependency direction transport -> server already implies.
type Session interface {
	WriteHandle
	PeerID() string
	LobbyID() uuid.UUID
	ReadFrame() (ClientFrame, error)
}

// ClientFrame is one decoded client->server frame.
type ClientFrame struct {
	Tick    uuid.UUID       `json:"tick"`
	Action  game.ActionType `json:"action"`
	Degrees *int            `json:"degrees"`
}

// Router is the message router: one instance shared by every
// connection, parameterized per call by the Session it serves.
type Router struct {
	directory LobbyLookup
	registry  *Registry
	scheduler *Scheduler
}

// NewRouter wires a Router to the directory, registry and scheduler
// it routes input into.
func NewRouter(directory LobbyLookup, registry *Registry, scheduler *Scheduler) *Router {
	return &Router{directory: directory, registry: registry, scheduler: scheduler}
}

// Serve runs one connection's read pump until it closes. The caller
// is expected to have already registered sess's write handle with
// the registry and performed admission (AddClient); Serve owns only
// the steady-state frame loop and the cleanup on exit.
func (rt *Router) Serve(sess Session) {
	peerID := sess.PeerID()
	lobbyID := sess.LobbyID()

	defer rt.cleanup(lobbyID, peerID, sess)

	for {
		frame, err := sess.ReadFrame()
		if err != nil {
			return
		}
		rt.handleFrame(lobbyID, peerID, frame)
	}
}

// handleFrame applies one admitted frame to its lobby. Decode
// failures never reach here; the Session's ReadFrame is responsible
// for dropping those before a frame gets this far.
func (rt *Router) handleFrame(lobbyID uuid.UUID, peerID string, frame ClientFrame) {
	l, ok := rt.directory.Get(lobbyID)
	if !ok {
		return
	}

	result := l.InsertInput(peerID, frame.Tick, frame.Action, frame.Degrees)

	switch result {
	case game.Accepted:
		rt.scheduler.EarlyAdvance(lobbyID, frame.Tick)
	case game.NotRunning:
		log.Printf("router: dropped input from %s, lobby %s not running", peerID, lobbyID)
	case game.NotAPlayer:
		log.Printf("router: dropped input from non-player %s in lobby %s", peerID, lobbyID)
	case game.DuplicateThisTick:
		log.Printf("router: dropped duplicate input from %s for tick %s", peerID, frame.Tick)
	case game.StaleTick:
		log.Printf("router: dropped stale input from %s for tick %s", peerID, frame.Tick)
	}
}

// cleanup runs once the read loop exits.
func (rt *Router) cleanup(lobbyID uuid.UUID, peerID string, sess Session) {
	l, ok := rt.directory.Get(lobbyID)
	if ok {
		if wasPlayer := l.RemoveClient(peerID); wasPlayer {
			rt.scheduler.BroadcastNow(lobbyID)
		}
	}
	rt.registry.Unregister(peerID)
	sess.Close()
}

// DecodeFrame parses one client->server JSON frame. Used by
// transport.Conn.ReadFrame so the wire shape lives in one place.
func DecodeFrame(raw []byte) (ClientFrame, error) {
	var frame ClientFrame
	err := json.Unmarshal(raw, &frame)
	return frame, err
}

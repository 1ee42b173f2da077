// Package lobby is the Lifecycle Controller: it owns the process-wide
// lobbies directory and the status transitions the control plane may
// request. Lock ordering is directory first, then the individual
// lobby's own lock — never the reverse.
package lobby

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/FelixGerberding/tank-arena/game"
)

// ErrNotFound is returned when a lobby id has no matching lobby.
var ErrNotFound = errors.New("lobby not found")

// ErrRunning is returned when a status change is attempted on a
// RUNNING lobby; only PENDING lobbies accept a PATCH.
var ErrRunning = errors.New("lobby is running and rejects status changes")

// Directory is the process-wide lobbies directory. Safe for
// concurrent use.
type Directory struct {
	mu      sync.RWMutex
	lobbies map[uuid.UUID]*game.Lobby

	// OnRunning fires after a lobby transitions PENDING->RUNNING, with
	// the directory lock already released. The caller wires this to
	// the Tick Scheduler's Start method; kept as an injected callback
	// (rather than a direct import) to avoid a lobby<->server cycle.
	OnRunning func(lobbyID uuid.UUID)
}

// NewDirectory returns an empty lobbies directory.
func NewDirectory() *Directory {
	return &Directory{lobbies: make(map[uuid.UUID]*game.Lobby)}
}

// CreateLobby mints a PENDING lobby and returns its id.
func (d *Directory) CreateLobby() uuid.UUID {
	l := game.NewLobby()

	d.mu.Lock()
	d.lobbies[l.ID] = l
	d.mu.Unlock()

	return l.ID
}

// Get looks up a lobby by id under the directory's read lock.
func (d *Directory) Get(id uuid.UUID) (*game.Lobby, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	l, ok := d.lobbies[id]
	return l, ok
}

// ClientSummary is one entry of a LobbyOut's client list.
type ClientSummary struct {
	ClientType game.ClientKind `json:"client_type"`
	Username   string          `json:"username"`
}

// LobbyOut is the control-plane listing shape for one lobby.
type LobbyOut struct {
	ID         uuid.UUID       `json:"id"`
	Status     game.LobbyStatus `json:"status"`
	Clients    []ClientSummary `json:"clients"`
	Spectators int             `json:"spectators"`
}

// ListLobbies returns a point-in-time snapshot of every lobby.
func (d *Directory) ListLobbies() []LobbyOut {
	d.mu.RLock()
	ids := make([]*game.Lobby, 0, len(d.lobbies))
	for _, l := range d.lobbies {
		ids = append(ids, l)
	}
	d.mu.RUnlock()

	out := make([]LobbyOut, 0, len(ids))
	for _, l := range ids {
		l.Mu.Lock()
		summary := LobbyOut{ID: l.ID, Status: l.Status, Clients: make([]ClientSummary, 0, len(l.Clients))}
		for _, peerID := range l.ClientOrder {
			c, ok := l.Clients[peerID]
			if !ok {
				continue
			}
			if c.Kind == game.ClientSpectator {
				summary.Spectators++
			}
			summary.Clients = append(summary.Clients, ClientSummary{ClientType: c.Kind, Username: c.Username})
		}
		l.Mu.Unlock()
		out = append(out, summary)
	}
	return out
}

// SetStatus applies a control-plane requested status transition.
// RUNNING lobbies reject any further PATCH. A successful
// PENDING->RUNNING transition invokes OnRunning after the lobby lock
// is released, so the scheduler's first iteration can safely
// re-acquire it.
func (d *Directory) SetStatus(id uuid.UUID, newStatus game.LobbyStatus) error {
	l, ok := d.Get(id)
	if !ok {
		return ErrNotFound
	}

	l.Mu.Lock()
	if l.Status == game.StatusRunning {
		l.Mu.Unlock()
		return ErrRunning
	}
	startScheduler := l.Status == game.StatusPending && newStatus == game.StatusRunning
	l.Status = newStatus
	l.Mu.Unlock()

	if startScheduler && d.OnRunning != nil {
		d.OnRunning(id)
	}
	return nil
}

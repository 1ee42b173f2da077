package game

import "github.com/google/uuid"

// InsertResult is the outcome of an input admission check.
type InsertResult int

const (
	Accepted InsertResult = iota
	DuplicateThisTick
	StaleTick
	NotAPlayer
	NotRunning
)

// InsertInput performs the atomic admission check and store: not-
// running, not-a-player, duplicate-this-tick and stale-tick are all
// checked under the lobby lock before the value is stored.
func (l *Lobby) InsertInput(peerID string, tick uuid.UUID, action ActionType, degrees *int) InsertResult {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Status != StatusRunning {
		return NotRunning
	}
	client, ok := l.Clients[peerID]
	if !ok || client.Kind != ClientPlayer {
		return NotAPlayer
	}
	if _, ok := l.PendingInputs[peerID]; ok {
		return DuplicateThisTick
	}
	if tick != l.Tick {
		return StaleTick
	}

	l.PendingInputs[peerID] = &PendingInput{Tick: tick, Action: action, Degrees: degrees}
	return Accepted
}

// Snapshot returns a broadcast-ready copy of the current world.
func (l *Lobby) Snapshot() *GameStateOut {
	l.Mu.Lock()
	defer l.Mu.Unlock()
	return SnapshotLocked(l)
}

// SnapshotLocked is Snapshot for callers that already hold l.Mu (the
// scheduler, mid-tick).
func SnapshotLocked(l *Lobby) *GameStateOut {
	players := make([]*Player, 0, len(l.State.Players))
	for _, peerID := range l.ClientOrder {
		if p, ok := l.State.Players[peerID]; ok {
			cp := *p
			players = append(players, &cp)
		}
	}

	entities := make([]*Projectile, len(l.State.Entities))
	for i, e := range l.State.Entities {
		cp := *e
		entities[i] = &cp
	}

	spectators := 0
	for _, c := range l.Clients {
		if c.Kind == ClientSpectator {
			spectators++
		}
	}

	return &GameStateOut{
		Tick:               l.Tick,
		TickLengthMilliSec: l.TickLengthMs,
		Players:            players,
		Entities:           entities,
		Spectators:         spectators,
	}
}

// AddClient admits a newly accepted connection. PLAYER joins allocate
// a Player and re-seat the whole lobby; SPECTATOR joins only record
// the client. Returns the ClientHello payload for PLAYERs (nil for
// SPECTATOR) or an admission error — on error, no state is mutated.
func (l *Lobby) AddClient(peerID string, kind ClientKind, username string) (*ClientHelloOut, error) {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	if kind == ClientPlayer {
		if l.Status != StatusPending {
			return nil, ErrLobbyNotOpen(l.ID.String())
		}
		newCount := len(l.State.Players) + 1
		if _, ok := FormationsFor(newCount); !ok {
			return nil, ErrNoFormation
		}
		color, ok := ColorFor(newCount)
		if !ok {
			return nil, ErrNoColor(newCount - 1)
		}

		playerID := uuid.New()
		l.Clients[peerID] = &Client{PeerID: peerID, Kind: ClientPlayer, Username: username}
		l.ClientOrder = append(l.ClientOrder, peerID)
		l.State.Players[peerID] = &Player{
			ID:                playerID,
			PeerID:            peerID,
			Name:              username,
			Color:             color,
			Health:            100,
			LastActionSuccess: true,
			EntityType:        "PLAYER",
		}
		reseatLocked(l)
		l.Tick = uuid.New()

		return &ClientHelloOut{Success: true, Message: "Connection successful.", PlayerID: playerID}, nil
	}

	l.Clients[peerID] = &Client{PeerID: peerID, Kind: ClientSpectator, Username: username}
	l.ClientOrder = append(l.ClientOrder, peerID)
	return nil, nil
}

// RemoveClient drops a disconnected peer. For a PLAYER leaving during
// PENDING, the remaining players are re-seated and the tick rotates;
// the player and client entries are always cleared regardless of
// lobby status.
func (l *Lobby) RemoveClient(peerID string) (wasPlayer bool) {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	client, ok := l.Clients[peerID]
	if !ok {
		return false
	}
	wasPlayer = client.Kind == ClientPlayer

	delete(l.Clients, peerID)
	for i, id := range l.ClientOrder {
		if id == peerID {
			l.ClientOrder = append(l.ClientOrder[:i], l.ClientOrder[i+1:]...)
			break
		}
	}

	if wasPlayer {
		delete(l.State.Players, peerID)
		delete(l.PendingInputs, peerID)
		if l.Status == StatusPending {
			reseatLocked(l)
			l.Tick = uuid.New()
		}
	}

	return wasPlayer
}

// AlivePlayerCount returns the number of players with health > 0.
func AlivePlayerCount(l *Lobby) int {
	alive := 0
	for _, p := range l.State.Players {
		if p.Health > 0 {
			alive++
		}
	}
	return alive
}

// reseatLocked reassigns every player's position from the starting
// formation table, in client join order. Caller must hold l.Mu.
func reseatLocked(l *Lobby) {
	order := make([]string, 0, len(l.State.Players))
	for _, id := range l.ClientOrder {
		if _, ok := l.State.Players[id]; ok {
			order = append(order, id)
		}
	}

	formation, ok := FormationsFor(len(order))
	if !ok {
		return
	}
	for i, peerID := range order {
		p := l.State.Players[peerID]
		f := formation[i]
		p.X, p.Y, p.Rotation = f.X, f.Y, f.Rotation
	}
}

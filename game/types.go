// Package game holds the World Rules and Lobby State: the pure
// movement/shooting/physics model and the data container for a single
// lobby. Nothing in this package performs I/O; mutation comes from the
// scheduler and router in the server package, the transport's
// admission path (AddClient) and the lobby directory's status changes,
// always under a Lobby's Mu.
package game

import (
	"sync"

	"github.com/google/uuid"
)

// Field and rule constants.
const (
	MaxFieldSizeX      = 30
	MaxFieldSizeY      = 30
	MaxRounds          = 500
	ProjectileTravel   = 6.0
	TickLengthMilliSec = 2000
	MaxPlayersPerLobby = 7
)

// LobbyStatus is the lobby lifecycle state.
type LobbyStatus string

const (
	StatusPending  LobbyStatus = "PENDING"
	StatusRunning  LobbyStatus = "RUNNING"
	StatusFinished LobbyStatus = "FINISHED"
)

// ClientKind distinguishes the two connection roles.
type ClientKind string

const (
	ClientPlayer    ClientKind = "PLAYER"
	ClientSpectator ClientKind = "SPECTATOR"
)

// ActionType is the closed set of client actions.
type ActionType string

const (
	ActionShoot ActionType = "SHOOT"
	ActionTurn  ActionType = "TURN"
	ActionUp    ActionType = "UP"
	ActionDown  ActionType = "DOWN"
	ActionLeft  ActionType = "LEFT"
	ActionRight ActionType = "RIGHT"
)

// Client is a connected participant of a lobby, keyed by peer id in
// Lobby.Clients.
type Client struct {
	PeerID   string     `json:"-"`
	Kind     ClientKind `json:"client_type"`
	Username string     `json:"username"`
}

// Player is the in-world entity owned by a PLAYER client.
type Player struct {
	ID                uuid.UUID `json:"id"`
	PeerID            string    `json:"-"`
	Name              string    `json:"name"`
	X                 int       `json:"x"`
	Y                 int       `json:"y"`
	Rotation          int       `json:"rotation"`
	Color             string    `json:"color"`
	Health            int       `json:"health"`
	LastActionSuccess bool      `json:"last_action_success"`
	ErrorMessage      string    `json:"error_message"`
	EntityType        string    `json:"entity_type"`
}

// Projectile is a flying shot. Source is the firing peer id and is
// never serialized.
type Projectile struct {
	ID             uuid.UUID `json:"id"`
	PreviousX      float64   `json:"previous_x"`
	PreviousY      float64   `json:"previous_y"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Direction      int       `json:"direction"`
	TravelDistance float64   `json:"travel_distance"`
	Source         string    `json:"-"`
}

// PendingInput is the single admitted action a player has supplied
// for the current tick.
type PendingInput struct {
	Tick    uuid.UUID
	Action  ActionType
	Degrees *int
}

// GameState is the mutable world: the player and projectile tables.
type GameState struct {
	Players  map[string]*Player
	Entities []*Projectile
}

// NewGameState returns an empty world.
func NewGameState() *GameState {
	return &GameState{
		Players:  make(map[string]*Player),
		Entities: make([]*Projectile, 0),
	}
}

// GameStateOut is the broadcast envelope.
type GameStateOut struct {
	Tick               uuid.UUID     `json:"tick"`
	TickLengthMilliSec int           `json:"tick_length_milli_seconds"`
	Players            []*Player     `json:"players"`
	Entities           []*Projectile `json:"entities"`
	Spectators         int           `json:"spectators"`
}

// ClientHelloOut is sent to a newly accepted PLAYER only.
type ClientHelloOut struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	PlayerID uuid.UUID `json:"player_id"`
}

// Lobby is the passive data container for one game. Clients,
// PendingInputs and the game state are mutated only by callers
// holding Mu; ClientOrder tracks join order separately from the map
// since Go maps do not preserve insertion order and the re-seat rule
// depends on it.
type Lobby struct {
	Mu            sync.Mutex
	ID            uuid.UUID
	Status        LobbyStatus
	Tick          uuid.UUID
	Round         int
	TickLengthMs  int
	Clients       map[string]*Client
	ClientOrder   []string
	PendingInputs map[string]*PendingInput
	State         *GameState
}

// NewLobby creates a PENDING lobby with a fresh tick id and empty state.
func NewLobby() *Lobby {
	return &Lobby{
		ID:            uuid.New(),
		Status:        StatusPending,
		Tick:          uuid.New(),
		Round:         0,
		TickLengthMs:  TickLengthMilliSec,
		Clients:       make(map[string]*Client),
		ClientOrder:   make([]string, 0),
		PendingInputs: make(map[string]*PendingInput),
		State:         NewGameState(),
	}
}

// Min returns the smaller of two ints.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two ints.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

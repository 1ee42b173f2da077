package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/FelixGerberding/tank-arena/game"
)

// LobbyLookup is the directory's read side, as the scheduler needs
// it. The scheduler holds a lobby id, not a lobby pointer, and looks
// it up fresh every time it needs to touch the lobby; this is the
// only coupling to the lobby package, kept as an interface to avoid
// importing it directly.
type LobbyLookup interface {
	Get(id uuid.UUID) (*game.Lobby, bool)
}

// Scheduler is the tick driver: one logical task per RUNNING lobby,
// driven by a deadline timer armed through the connection registry
// and a generation check against the lobby's current tick id.
type Scheduler struct {
	directory LobbyLookup
	registry  *Registry
}

// NewScheduler wires a Scheduler to the directory it looks lobbies up
// in and the registry it arms timers and fans broadcasts out through.
func NewScheduler(directory LobbyLookup, registry *Registry) *Scheduler {
	return &Scheduler{directory: directory, registry: registry}
}

// Start begins the tick loop for lobbyID. Called once, by the
// directory's OnRunning callback right after a PENDING->RUNNING
// transition; the first iteration runs immediately.
func (s *Scheduler) Start(lobbyID uuid.UUID) {
	l, ok := s.directory.Get(lobbyID)
	if !ok {
		return
	}
	l.Mu.Lock()
	s.runLocked(lobbyID, l)
}

// EarlyAdvance is the Message Router's trigger: re-acquires the
// lobby lock, validates the completion predicate for tick, and if it
// holds, cancels the open deadline timer and runs the loop body
// immediately.
func (s *Scheduler) EarlyAdvance(lobbyID uuid.UUID, tick uuid.UUID) {
	l, ok := s.directory.Get(lobbyID)
	if !ok {
		return
	}

	l.Mu.Lock()
	if l.Status != game.StatusRunning || l.Tick != tick {
		l.Mu.Unlock()
		return
	}
	if !game.CompletionPredicate(l) {
		l.Mu.Unlock()
		return
	}

	s.registry.CancelTimer(tick)
	s.runLocked(lobbyID, l)
}

// onDeadline fires when an armed timer expires. expectedTick is the
// generation id the timer was armed for; a mismatch against the
// lobby's current tick means the timer lost a cancellation race and
// must be a no-op.
func (s *Scheduler) onDeadline(lobbyID uuid.UUID, expectedTick uuid.UUID) {
	l, ok := s.directory.Get(lobbyID)
	if !ok {
		return
	}

	l.Mu.Lock()
	if l.Tick != expectedTick {
		log.Printf("lobby %s: stale deadline for tick %s, current tick is %s; ignoring", lobbyID, expectedTick, l.Tick)
		l.Mu.Unlock()
		return
	}
	s.registry.ClearTimer(expectedTick)
	s.runLocked(lobbyID, l)
}

// runLocked applies pending inputs, runs physics, rotates the tick,
// checks termination, and fans out the resulting snapshot. Caller
// must hold l.Mu; runLocked always releases it before returning.
func (s *Scheduler) runLocked(lobbyID uuid.UUID, l *game.Lobby) {
	if l.Status != game.StatusRunning {
		l.Mu.Unlock()
		return
	}

	finished := game.AdvanceLocked(l)
	snapshot := game.SnapshotLocked(l)
	tickLenMs := l.TickLengthMs
	currentTick := l.Tick

	peers := make([]string, 0, len(l.ClientOrder))
	peers = append(peers, l.ClientOrder...)

	l.Mu.Unlock()

	s.fanOut(peers, snapshot)

	if finished {
		log.Printf("lobby %s: finished", lobbyID)
		return
	}

	s.registry.ArmTimer(currentTick, time.Duration(tickLenMs)*time.Millisecond, func() {
		s.onDeadline(lobbyID, currentTick)
	})
}

// fanOut sends one encoded GameStateOut to every peer. The lobby
// lock is already released by the time this runs.
func (s *Scheduler) fanOut(peers []string, snapshot *game.GameStateOut) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("scheduler: failed to encode game state: %v", err)
		return
	}
	for _, peerID := range peers {
		s.registry.SendText(peerID, payload)
	}
}

// BroadcastNow builds and fans out a fresh snapshot without
// incrementing the round, used by the Message Router after a player
// disconnects. If the lobby is still RUNNING, the tick is rotated so
// this broadcast never shares a tick id with the last scheduled one,
// and the open deadline timer is cancelled and re-armed under the new
// tick so the stale one's generation check doesn't strand the lobby
// with no pending timer.
func (s *Scheduler) BroadcastNow(lobbyID uuid.UUID) {
	l, ok := s.directory.Get(lobbyID)
	if !ok {
		return
	}

	l.Mu.Lock()
	oldTick := l.Tick
	running := l.Status == game.StatusRunning
	if running {
		l.Tick = uuid.New()
	}
	newTick := l.Tick
	tickLenMs := l.TickLengthMs
	snapshot := game.SnapshotLocked(l)
	peers := make([]string, 0, len(l.ClientOrder))
	peers = append(peers, l.ClientOrder...)
	l.Mu.Unlock()

	s.fanOut(peers, snapshot)

	if !running {
		return
	}

	s.registry.CancelTimer(oldTick)
	s.registry.ArmTimer(newTick, time.Duration(tickLenMs)*time.Millisecond, func() {
		s.onDeadline(lobbyID, newTick)
	})
}

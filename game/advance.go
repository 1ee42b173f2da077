package game

import "github.com/google/uuid"

// AdvanceLocked applies every pending input, runs projectile
// physics, rotates the tick, and checks the termination condition.
// The caller (the scheduler) must already hold l.Mu and is
// responsible for the surrounding status gate, broadcast, and
// deadline arming. Returns true once the lobby has transitioned to
// FINISHED.
func AdvanceLocked(l *Lobby) bool {
	ResetActionFeedback(l.State.Players)

	for peerID, input := range l.PendingInputs {
		if p, ok := l.State.Players[peerID]; ok {
			ApplyAction(p, input, &l.State.Entities)
		}
	}

	l.State.Entities = UpdateProjectiles(l.State.Entities, l.State.Players)

	l.Tick = uuid.New()
	l.Round++
	l.PendingInputs = make(map[string]*PendingInput)

	if l.Round >= MaxRounds || AlivePlayerCount(l) <= 1 {
		l.Status = StatusFinished
	}

	return l.Status == StatusFinished
}

// CompletionPredicate reports whether every connected PLAYER has an
// entry in pending_inputs. Vacuously true when there are no players
// left.
func CompletionPredicate(l *Lobby) bool {
	for peerID, c := range l.Clients {
		if c.Kind != ClientPlayer {
			continue
		}
		if _, ok := l.PendingInputs[peerID]; !ok {
			return false
		}
	}
	return true
}

package game

import "github.com/google/uuid"

// ApplyAction mutates p according to a single admitted input, setting
// LastActionSuccess/ErrorMessage to reflect the outcome. Callers must
// have already reset these two fields for the tick before calling.
func ApplyAction(p *Player, input *PendingInput, entities *[]*Projectile) {
	if p.Health <= 0 {
		p.LastActionSuccess = false
		p.ErrorMessage = ErrMsgNoHealth
		return
	}

	switch input.Action {
	case ActionShoot:
		*entities = append(*entities, &Projectile{
			ID:             uuid.New(),
			PreviousX:      float64(p.X),
			PreviousY:      float64(p.Y),
			X:              float64(p.X),
			Y:              float64(p.Y),
			Direction:      p.Rotation,
			TravelDistance: ProjectileTravel,
			Source:         p.PeerID,
		})
		p.LastActionSuccess = true
		p.ErrorMessage = ""

	case ActionTurn:
		if input.Degrees == nil {
			p.LastActionSuccess = false
			p.ErrorMessage = ErrMsgTurnNoDegrees
			return
		}
		degrees := *input.Degrees
		if degrees < 0 || degrees > 360 {
			p.LastActionSuccess = false
			p.ErrorMessage = ErrMsgTurnOutOfRange
			return
		}
		p.Rotation = degrees
		p.LastActionSuccess = true
		p.ErrorMessage = ""

	case ActionUp:
		applyMove(p, 0, 1)
	case ActionDown:
		applyMove(p, 0, -1)
	case ActionLeft:
		applyMove(p, -1, 0)
	case ActionRight:
		applyMove(p, 1, 0)
	}
}

// applyMove moves p by (dx, dy) if the result stays on the field,
// otherwise fails with the border error.
func applyMove(p *Player, dx, dy int) {
	newX, newY := p.X+dx, p.Y+dy
	if newX < 0 || newX > MaxFieldSizeX-1 || newY < 0 || newY > MaxFieldSizeY-1 {
		p.LastActionSuccess = false
		p.ErrorMessage = ErrMsgBorder
		return
	}
	p.X, p.Y = newX, newY
	p.LastActionSuccess = true
	p.ErrorMessage = ""
}

// ResetActionFeedback clears the per-tick feedback fields for every
// player; called once per advance before pending inputs are applied.
func ResetActionFeedback(players map[string]*Player) {
	for _, p := range players {
		p.LastActionSuccess = true
		p.ErrorMessage = ""
	}
}

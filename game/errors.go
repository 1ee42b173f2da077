package game

import (
	"errors"
	"fmt"
)

// Admission errors — fatal for the connection only, sent as the
// close-frame reason.
var (
	ErrLobbyIDMissing    = errors.New("Could not find lobby id in path")
	ErrMissingQuery      = errors.New("Missing query string in URL")
	ErrMissingClientType = errors.New("Missing 'clientType' parameter in supplied query parameters")
	ErrMissingUsername   = errors.New("Player clients must supply a 'username' via the query parameter")
	ErrNoFormation       = errors.New("Cannot add player, because no starting formation is maintained for the player count.")
)

// ErrInvalidUUID mirrors the original's "'<s>' is not a valid UUID".
func ErrInvalidUUID(s string) error {
	return fmt.Errorf("'%s' is not a valid UUID", s)
}

// ErrInvalidClientType mirrors "<s> is not a valid client type".
func ErrInvalidClientType(s string) error {
	return fmt.Errorf("%s is not a valid client type", s)
}

// ErrLobbyNotFound mirrors "Could not find lobby with id '<uuid>'".
func ErrLobbyNotFound(id string) error {
	return fmt.Errorf("Could not find lobby with id '%s'", id)
}

// ErrLobbyNotOpen mirrors "Lobby with id '<uuid>' is not open for new connections".
func ErrLobbyNotOpen(id string) error {
	return fmt.Errorf("Lobby with id '%s' is not open for new connections", id)
}

// ErrNoColor mirrors "Could not get color for new player. Lobby already has N players."
func ErrNoColor(n int) error {
	return fmt.Errorf("Could not get color for new player. Lobby already has %d players.", n)
}

// Input errors — non-fatal, stored on the player and surfaced in the
// next broadcast.
const (
	ErrMsgNoHealth       = "Message was not processed, because player has no more health left"
	ErrMsgTurnNoDegrees  = "Cannot TURN, because no 'degrees' property was supplied"
	ErrMsgTurnOutOfRange = "Cannot TURN, because 'degrees' is not within range (0 - 360)"
	ErrMsgBorder         = "Cannot move UP/DOWN/LEFT/RIGHT, because player is at border of field"
)

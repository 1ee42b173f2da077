// Package transport is the client wire protocol surface: WebSocket
// upgrade, URL/query admission parsing, and the JSON frame shapes
// exchanged with the message router. Admission decisions are made
// here, but lobby state only ever changes through game.Lobby's own
// methods.
package transport

import (
	"html"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/FelixGerberding/tank-arena/game"
	"github.com/FelixGerberding/tank-arena/lobby"
)

func queryValues(rawQuery string) (url.Values, error) {
	return url.ParseQuery(rawQuery)
}

const maxUsernameLength = 20

// sanitizeUsername caps the length of a supplied username and escapes
// HTML special characters before it is ever stored on a Client or
// Player, since it is echoed back verbatim in every broadcast.
func sanitizeUsername(name string) string {
	if len(name) > maxUsernameLength {
		name = name[:maxUsernameLength]
	}
	return html.EscapeString(name)
}

const lobbyPathPrefix = "/lobby/"

// admission is the parsed result of a successful URL/query check.
type admission struct {
	lobbyID  uuid.UUID
	kind     game.ClientKind
	username string
}

// admit parses the upgrade URL against the admission rules, returning
// the canonical error for the first rule that fails. It never touches
// lobby or directory state; lobby existence is the only check here
// that reaches into the directory, and only to read.
func admit(path, rawQuery string, directory *lobby.Directory) (admission, error) {
	if !strings.HasPrefix(path, lobbyPathPrefix) || len(path) == len(lobbyPathPrefix) {
		return admission{}, game.ErrLobbyIDMissing
	}
	idStr := path[len(lobbyPathPrefix):]

	lobbyID, err := uuid.Parse(idStr)
	if err != nil {
		return admission{}, game.ErrInvalidUUID(idStr)
	}

	if rawQuery == "" {
		return admission{}, game.ErrMissingQuery
	}
	query, err := queryValues(rawQuery)
	if err != nil {
		return admission{}, game.ErrMissingQuery
	}

	clientType := query.Get("clientType")
	if clientType == "" {
		return admission{}, game.ErrMissingClientType
	}

	var kind game.ClientKind
	switch clientType {
	case string(game.ClientPlayer):
		kind = game.ClientPlayer
	case string(game.ClientSpectator):
		kind = game.ClientSpectator
	default:
		return admission{}, game.ErrInvalidClientType(clientType)
	}

	username := query.Get("username")
	if kind == game.ClientPlayer && username == "" {
		return admission{}, game.ErrMissingUsername
	}

	if _, ok := directory.Get(lobbyID); !ok {
		return admission{}, game.ErrLobbyNotFound(lobbyID.String())
	}

	return admission{lobbyID: lobbyID, kind: kind, username: sanitizeUsername(username)}, nil
}

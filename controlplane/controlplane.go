// Package controlplane is the HTTP surface for listing, creating, and
// patching the status of lobbies: a routed gorilla/mux surface with
// gorilla/handlers CORS.
package controlplane

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/FelixGerberding/tank-arena/game"
	"github.com/FelixGerberding/tank-arena/lobby"
)

// NewHandler builds the routed control-plane surface, CORS-wrapped
// for any origin and the `GET, POST, PATCH` methods with
// `Content-Type, Authorization` headers.
func NewHandler(directory *lobby.Directory) http.Handler {
	r := mux.NewRouter()
	cp := &controlPlane{directory: directory}

	r.HandleFunc("/lobbies", cp.list).Methods(http.MethodGet)
	r.HandleFunc("/lobbies", cp.create).Methods(http.MethodPost)
	r.HandleFunc("/lobbies/{id}", cp.setStatus).Methods(http.MethodPatch)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return cors(r)
}

type controlPlane struct {
	directory *lobby.Directory
}

// lobbiesOut is the GET /lobbies envelope.
type lobbiesOut struct {
	Lobbies []lobby.LobbyOut `json:"lobbies"`
}

func (cp *controlPlane) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lobbiesOut{Lobbies: cp.directory.ListLobbies()})
}

// createOut is the POST /lobbies response. The request body is
// ignored.
type createOut struct {
	ID uuid.UUID `json:"id"`
}

func (cp *controlPlane) create(w http.ResponseWriter, r *http.Request) {
	id := cp.directory.CreateLobby()
	writeJSON(w, http.StatusOK, createOut{ID: id})
}

// statusIn is the PATCH /lobbies/{id} request body.
type statusIn struct {
	Status game.LobbyStatus `json:"status"`
}

func (cp *controlPlane) setStatus(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid lobby id", http.StatusNotFound)
		return
	}

	var body statusIn
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}

	switch err := cp.directory.SetStatus(id, body.Status); err {
	case nil:
		w.WriteHeader(http.StatusOK)
	case lobby.ErrNotFound:
		http.Error(w, "lobby not found", http.StatusNotFound)
	case lobby.ErrRunning:
		http.Error(w, "lobby is running", http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package controlplane

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FelixGerberding/tank-arena/game"
	"github.com/FelixGerberding/tank-arena/lobby"
)

func TestCreateLobby_ReturnsID(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)

	req := httptest.NewRequest(http.MethodPost, "/lobbies", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var out createOut
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := d.Get(out.ID); !ok {
		t.Fatalf("expected the returned id to resolve to a real lobby")
	}
}

func TestListLobbies_IncludesCreatedLobby(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)
	id := d.CreateLobby()

	req := httptest.NewRequest(http.MethodGet, "/lobbies", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out lobbiesOut
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	found := false
	for _, l := range out.Lobbies {
		if l.ID == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected created lobby %s in listing", id)
	}
}

func TestSetStatus_NotFoundReturns404(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)

	body, _ := json.Marshal(statusIn{Status: game.StatusRunning})
	req := httptest.NewRequest(http.MethodPatch, "/lobbies/11111111-1111-1111-1111-111111111111", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSetStatus_RunningRejectsFurtherPatchWith422(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)
	id := d.CreateLobby()
	d.SetStatus(id, game.StatusRunning)

	body, _ := json.Marshal(statusIn{Status: game.StatusFinished})
	req := httptest.NewRequest(http.MethodPatch, "/lobbies/"+id.String(), bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestSetStatus_PendingToRunningSucceeds(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)
	id := d.CreateLobby()

	body, _ := json.Marshal(statusIn{Status: game.StatusRunning})
	req := httptest.NewRequest(http.MethodPatch, "/lobbies/"+id.String(), bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	l, _ := d.Get(id)
	if l.Status != game.StatusRunning {
		t.Fatalf("expected lobby to transition to RUNNING, got %s", l.Status)
	}
}

func TestSetStatus_InvalidIDReturns404(t *testing.T) {
	d := lobby.NewDirectory()
	h := NewHandler(d)

	body, _ := json.Marshal(statusIn{Status: game.StatusRunning})
	req := httptest.NewRequest(http.MethodPatch, "/lobbies/not-a-uuid", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a malformed id, got %d", rr.Code)
	}
}

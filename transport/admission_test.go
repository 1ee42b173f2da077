package transport

import (
	"testing"

	"github.com/FelixGerberding/tank-arena/game"
	"github.com/FelixGerberding/tank-arena/lobby"
)

func TestAdmit_MissingLobbyIDInPath(t *testing.T) {
	d := lobby.NewDirectory()
	_, err := admit("/lobby/", "clientType=SPECTATOR", d)
	if err != game.ErrLobbyIDMissing {
		t.Fatalf("expected ErrLobbyIDMissing, got %v", err)
	}
}

func TestAdmit_WrongPathPrefix(t *testing.T) {
	d := lobby.NewDirectory()
	_, err := admit("/nope", "clientType=SPECTATOR", d)
	if err != game.ErrLobbyIDMissing {
		t.Fatalf("expected ErrLobbyIDMissing, got %v", err)
	}
}

func TestAdmit_InvalidUUID(t *testing.T) {
	d := lobby.NewDirectory()
	_, err := admit("/lobby/not-a-uuid", "clientType=SPECTATOR", d)
	if err == nil || err.Error() != game.ErrInvalidUUID("not-a-uuid").Error() {
		t.Fatalf("expected invalid UUID error, got %v", err)
	}
}

func TestAdmit_MissingQueryString(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	_, err := admit("/lobby/"+id.String(), "", d)
	if err != game.ErrMissingQuery {
		t.Fatalf("expected ErrMissingQuery, got %v", err)
	}
}

func TestAdmit_MissingClientType(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	_, err := admit("/lobby/"+id.String(), "username=alice", d)
	if err != game.ErrMissingClientType {
		t.Fatalf("expected ErrMissingClientType, got %v", err)
	}
}

func TestAdmit_InvalidClientType(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	_, err := admit("/lobby/"+id.String(), "clientType=REFEREE", d)
	if err == nil || err.Error() != game.ErrInvalidClientType("REFEREE").Error() {
		t.Fatalf("expected invalid client type error, got %v", err)
	}
}

func TestAdmit_PlayerRequiresUsername(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	_, err := admit("/lobby/"+id.String(), "clientType=PLAYER", d)
	if err != game.ErrMissingUsername {
		t.Fatalf("expected ErrMissingUsername, got %v", err)
	}
}

func TestAdmit_SpectatorWithoutUsernameIsFine(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	adm, err := admit("/lobby/"+id.String(), "clientType=SPECTATOR", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adm.kind != game.ClientSpectator || adm.username != "" {
		t.Fatalf("unexpected admission: %+v", adm)
	}
}

func TestAdmit_LobbyNotFound(t *testing.T) {
	d := lobby.NewDirectory()
	missing := "11111111-1111-1111-1111-111111111111"
	_, err := admit("/lobby/"+missing, "clientType=SPECTATOR", d)
	if err == nil || err.Error() != game.ErrLobbyNotFound(missing).Error() {
		t.Fatalf("expected lobby-not-found error, got %v", err)
	}
}

func TestAdmit_SuccessfulPlayerJoin(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	adm, err := admit("/lobby/"+id.String(), "clientType=PLAYER&username=alice", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adm.kind != game.ClientPlayer || adm.username != "alice" || adm.lobbyID != id {
		t.Fatalf("unexpected admission: %+v", adm)
	}
}

func TestAdmit_UsernameIsSanitized(t *testing.T) {
	d := lobby.NewDirectory()
	id := d.CreateLobby()
	adm, err := admit("/lobby/"+id.String(), "clientType=PLAYER&username=%3Cscript%3E", d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adm.username == "<script>" {
		t.Fatalf("expected the username to be HTML-escaped, got %q", adm.username)
	}
}

func TestSanitizeUsername_TruncatesLongNames(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz"
	got := sanitizeUsername(long)
	if len(got) != maxUsernameLength {
		t.Fatalf("expected truncation to %d chars, got %q (%d)", maxUsernameLength, got, len(got))
	}
}

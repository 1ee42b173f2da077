package game

import "testing"

func TestUpdateProjectiles_CullsOutOfField(t *testing.T) {
	entities := []*Projectile{
		{X: -1, Y: 5, Direction: 0, TravelDistance: ProjectileTravel},
		{X: 5, Y: -1, Direction: 0, TravelDistance: ProjectileTravel},
		{X: MaxFieldSizeX + 1, Y: 5, Direction: 0, TravelDistance: ProjectileTravel},
		{X: 5, Y: MaxFieldSizeY + 1, Direction: 0, TravelDistance: ProjectileTravel},
	}
	survivors := UpdateProjectiles(entities, map[string]*Player{})
	if len(survivors) != 0 {
		t.Fatalf("expected all four out-of-field projectiles culled, got %d survivors", len(survivors))
	}
}

func TestUpdateProjectiles_EdgeRetained(t *testing.T) {
	// x == MaxFieldSizeX exactly is retained per the asymmetric culling bound.
	entities := []*Projectile{{X: MaxFieldSizeX, Y: 5, Direction: 0, TravelDistance: ProjectileTravel}}
	survivors := UpdateProjectiles(entities, map[string]*Player{})
	if len(survivors) != 1 {
		t.Fatalf("expected projectile at exact edge to survive, got %d survivors", len(survivors))
	}
}

func TestUpdateProjectiles_AdvancesAlongFacing(t *testing.T) {
	// Direction 0 points along +Y (north).
	entities := []*Projectile{{X: 10, Y: 10, Direction: 0, TravelDistance: 6}}
	survivors := UpdateProjectiles(entities, map[string]*Player{})
	if len(survivors) != 1 {
		t.Fatalf("expected one survivor, got %d", len(survivors))
	}
	p := survivors[0]
	if p.PreviousX != 10 || p.PreviousY != 10 {
		t.Fatalf("expected previous position recorded, got (%v,%v)", p.PreviousX, p.PreviousY)
	}
	if p.X < 9.9 || p.X > 10.1 {
		t.Fatalf("expected x to stay ~10 moving due north, got %v", p.X)
	}
	if p.Y < 15.9 || p.Y > 16.1 {
		t.Fatalf("expected y to advance by travel distance, got %v", p.Y)
	}
}

func TestUpdateProjectiles_HitsPlayerOnLine(t *testing.T) {
	players := map[string]*Player{
		"target": {PeerID: "target", X: 10, Y: 13, Health: 100},
	}
	entities := []*Projectile{{X: 10, Y: 10, Direction: 0, TravelDistance: 6, Source: "shooter"}}

	UpdateProjectiles(entities, players)

	if players["target"].Health >= 100 {
		t.Fatalf("expected target on the swept line to take damage, health=%d", players["target"].Health)
	}
}

func TestUpdateProjectiles_NeverHitsOwnShooter(t *testing.T) {
	players := map[string]*Player{
		"shooter": {PeerID: "shooter", X: 10, Y: 13, Health: 100},
	}
	entities := []*Projectile{{X: 10, Y: 10, Direction: 0, TravelDistance: 6, Source: "shooter"}}

	UpdateProjectiles(entities, players)

	if players["shooter"].Health != 100 {
		t.Fatalf("shooter must never be damaged by its own projectile, health=%d", players["shooter"].Health)
	}
}

func TestUpdateProjectiles_HealthFloorsAtZero(t *testing.T) {
	players := map[string]*Player{
		"target": {PeerID: "target", X: 10, Y: 13, Health: 10},
	}
	entities := []*Projectile{{X: 10, Y: 10, Direction: 0, TravelDistance: 6, Source: "shooter"}}

	UpdateProjectiles(entities, players)

	if players["target"].Health != 0 {
		t.Fatalf("expected health to floor at 0, got %d", players["target"].Health)
	}
}

func TestMidpointLine_EndpointsIncluded(t *testing.T) {
	cells := midpointLine(0, 0, 3, 0)
	if len(cells) == 0 {
		t.Fatalf("expected at least one cell")
	}
	first, last := cells[0], cells[len(cells)-1]
	if first.x != 0 || first.y != 0 {
		t.Fatalf("expected line to start at origin, got %+v", first)
	}
	if last.x != 3 || last.y != 0 {
		t.Fatalf("expected line to end at (3,0), got %+v", last)
	}
}

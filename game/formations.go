package game

// Formation is a fixed starting position/rotation triple.
type Formation struct {
	X, Y, Rotation int
}

// startingFormations maps the *total* player count after a join/leave
// to the ordered list of seats players occupy, in client-join order.
// The 2-player row seats the first player at (5,14,270) and the
// second at (24,14,90). The remaining rows are a fixed, symmetric
// extension of that table up to the 7-player cap.
var startingFormations = map[int][]Formation{
	0: {},
	1: {
		{14, 14, 0},
	},
	2: {
		{5, 14, 270},
		{24, 14, 90},
	},
	3: {
		{5, 14, 270},
		{24, 14, 90},
		{14, 5, 180},
	},
	4: {
		{5, 5, 315},
		{24, 5, 45},
		{5, 24, 225},
		{24, 24, 135},
	},
	5: {
		{5, 5, 315},
		{24, 5, 45},
		{5, 24, 225},
		{24, 24, 135},
		{14, 14, 0},
	},
	6: {
		{5, 5, 315},
		{24, 5, 45},
		{5, 24, 225},
		{24, 24, 135},
		{14, 5, 180},
		{14, 24, 0},
	},
	7: {
		{5, 5, 315},
		{24, 5, 45},
		{5, 24, 225},
		{24, 24, 135},
		{14, 5, 180},
		{14, 24, 0},
		{14, 14, 90},
	},
}

// playerColors is the fixed 7-entry color table; the n-th player to
// join (1-based) gets playerColors[n-1].
var playerColors = [MaxPlayersPerLobby]string{
	"#e6194b",
	"#3cb44b",
	"#ffe119",
	"#4363d8",
	"#f58231",
	"#911eb4",
	"#46f0f0",
}

// FormationsFor returns the ordered seat list for a total player count.
func FormationsFor(count int) ([]Formation, bool) {
	f, ok := startingFormations[count]
	return f, ok
}

// ColorFor returns the fixed color for the n-th (1-based) player to join.
func ColorFor(n int) (string, bool) {
	if n < 1 || n > len(playerColors) {
		return "", false
	}
	return playerColors[n-1], true
}

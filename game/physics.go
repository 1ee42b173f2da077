package game

import "math"

// UpdateProjectiles runs one physics step: culls out-of-field
// projectiles, advances survivors along their facing, and damages
// every player other than the shooter whose cell lies on the swept
// line. The culling bound
// is intentionally asymmetric with the spawn bound (x > 30 retains a
// projectile at exactly the edge).
func UpdateProjectiles(entities []*Projectile, players map[string]*Player) []*Projectile {
	survivors := make([]*Projectile, 0, len(entities))

	for _, proj := range entities {
		if proj.X < 0 || proj.Y < 0 || proj.X > MaxFieldSizeX || proj.Y > MaxFieldSizeY {
			continue
		}

		radians := (90 - float64(proj.Direction)) * math.Pi / 180
		endX := proj.X + proj.TravelDistance*math.Cos(radians)
		endY := proj.Y + proj.TravelDistance*math.Sin(radians)

		for _, cell := range midpointLine(proj.X, proj.Y, endX, endY) {
			for _, p := range players {
				if p.PeerID == proj.Source {
					continue
				}
				if p.X == cell.x && p.Y == cell.y {
					p.Health = Max(0, p.Health-20)
				}
			}
		}

		proj.PreviousX, proj.PreviousY = proj.X, proj.Y
		proj.X, proj.Y = endX, endY
		survivors = append(survivors, proj)
	}

	return survivors
}

type gridCell struct{ x, y int }

// midpointLine returns the integer grid cells the segment from
// (x1,y1) to (x2,y2) passes through, via the standard Bresenham
// midpoint algorithm over the rounded endpoints.
func midpointLine(x1, y1, x2, y2 float64) []gridCell {
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	ix2, iy2 := int(math.Round(x2)), int(math.Round(y2))

	dx := int(math.Abs(float64(ix2 - ix1)))
	dy := -int(math.Abs(float64(iy2 - iy1)))
	sx, sy := 1, 1
	if ix1 > ix2 {
		sx = -1
	}
	if iy1 > iy2 {
		sy = -1
	}
	err := dx + dy

	cells := make([]gridCell, 0, Max(dx, -dy)+1)
	x, y := ix1, iy1
	for {
		cells = append(cells, gridCell{x, y})
		if x == ix2 && y == iy2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return cells
}

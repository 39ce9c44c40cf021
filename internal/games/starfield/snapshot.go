package starfield

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Score   int
	ShipX   float64
	ShipY   float64
	Heading float64
	Stars   int
	NextID  uint64
	Over    bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.world.Tick,
		Score:   g.world.Ship.Score,
		ShipX:   g.world.Ship.Pos.X,
		ShipY:   g.world.Ship.Pos.Y,
		Heading: g.world.Ship.Heading,
		Stars:   len(g.world.Stars),
		NextID:  g.world.NextID,
		Over:    g.sess.over,
	}
}

// Snapshot returns the current game snapshot.
func (g *PhysicsGame) Snapshot() Snapshot {
	ship := g.world.Ship()
	return Snapshot{
		Tick:    g.world.Tick(),
		Score:   g.world.Score(),
		ShipX:   ship.Pos.X,
		ShipY:   ship.Pos.Y,
		Heading: ship.Angle,
		Stars:   len(g.world.Stars()),
		NextID:  g.world.NextID(),
		Over:    g.sess.over,
	}
}

package sim

import (
	"github.com/vovakirdan/starcatcher/internal/core"
)

// Step advances w by one tick and returns the new world together with the
// events the tick produced. w itself is left untouched.
func Step(w World, in Input, rng Rand) (World, core.StepResult) {
	p := w.Params
	ship := w.Ship

	// Turning
	if in.Left {
		ship.Heading -= p.TurnStep
	}
	if in.Right {
		ship.Heading += p.TurnStep
	}

	// Thrust
	if in.Thrust {
		ship.Vel = ship.Vel.Add(core.HeadingToUnitVector(ship.Heading).Scale(p.Thrust))
	}

	// Integrate, wrap, then damp: this tick's thrust moves the ship undamped.
	ship.Pos = ship.Pos.Add(ship.Vel).Wrap(p.Width, p.Height)
	ship.Vel = ship.Vel.Scale(p.Damping)

	var events []core.Event

	stars := make([]Star, 0, len(w.Stars)+1)
	for _, s := range w.Stars {
		if ship.Pos.Dist(s.Pos) < p.PickupRadius {
			ship.Score += p.Reward
			events = append(events, core.Event{
				Kind:   core.EventPickup,
				ID:     s.ID,
				Pos:    s.Pos,
				Reward: p.Reward,
			})
			continue
		}
		stars = append(stars, s)
	}

	nextID := w.NextID
	if rng.Float64() < p.SpawnChance && len(stars) < p.MaxCount {
		s := Star{
			ID:    nextID,
			Pos:   core.V(rng.Float64()*p.Width, rng.Float64()*p.Height),
			Color: core.StarColors[rng.Intn(len(core.StarColors))],
		}
		// Guard against the float edge case where x*size rounds up to size.
		s.Pos = s.Pos.Wrap(p.Width, p.Height)
		nextID++
		stars = append(stars, s)
		events = append(events, core.Event{Kind: core.EventSpawn, ID: s.ID, Pos: s.Pos})
	}

	next := World{
		Params: p,
		Ship:   ship,
		Stars:  stars,
		NextID: nextID,
		Tick:   w.Tick + 1,
	}
	return next, core.StepResult{
		State:  core.GameState{Score: ship.Score},
		Events: events,
	}
}

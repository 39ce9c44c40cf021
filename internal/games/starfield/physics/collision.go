package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/starcatcher/internal/core"
)

// Category tags every shape in the space.
type Category int

const (
	CategoryNone Category = iota
	CategoryShip
	CategoryStar
)

func (c Category) collisionType() cp.CollisionType {
	return cp.CollisionType(c)
}

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryShip:
		return "Ship"
	case CategoryStar:
		return "Star"
	default:
		return "None"
	}
}

// pair is an ordered pair of categories.
type pair struct {
	a, b Category
}

// Handler reacts to two shapes starting to touch. a has the first category
// of the pair it was registered for. Returning false ignores the contact.
type Handler func(w *World, a, b *cp.Shape) bool

type dispatchTable map[pair]Handler

func defaultHandlers() dispatchTable {
	return dispatchTable{
		{CategoryShip, CategoryStar}: (*World).collectStar,
		{CategoryStar, CategoryStar}: ignoreContact,
	}
}

// installHandlers registers one engine handler per table entry. Every
// engine callback goes through dispatch.
func (w *World) installHandlers() {
	for key := range w.handlers {
		h := w.space.NewCollisionHandler(key.a.collisionType(), key.b.collisionType())
		h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
			a, b := arb.Shapes()
			return w.dispatch(a, b)
		}
	}
}

// dispatch looks up the handler for the shapes' categories. Pairs with no
// entry get the engine's default response.
func (w *World) dispatch(a, b *cp.Shape) bool {
	ca, cb := categoryOf(a), categoryOf(b)
	if h, ok := w.handlers[pair{ca, cb}]; ok {
		return h(w, a, b)
	}
	if h, ok := w.handlers[pair{cb, ca}]; ok {
		return h(w, b, a)
	}
	return true
}

func categoryOf(s *cp.Shape) Category {
	switch v := s.UserData.(type) {
	case *Star:
		return CategoryStar
	case Category:
		return v
	default:
		return CategoryNone
	}
}

// collectStar scores a star and queues it for removal. The star stays in
// the space until the next drain.
func (w *World) collectStar(_, starShape *cp.Shape) bool {
	s, ok := starShape.UserData.(*Star)
	if !ok {
		return false
	}
	if _, done := w.pending[s.ID]; done {
		return false
	}
	w.pending[s.ID] = s
	w.score += w.params.Reward
	w.events = append(w.events, core.Event{
		Kind:   core.EventPickup,
		ID:     s.ID,
		Pos:    s.Pos(),
		Reward: w.params.Reward,
	})
	if w.onPickup != nil {
		w.onPickup(s)
	}
	// Consumed stars never push the ship.
	return false
}

func ignoreContact(*World, *cp.Shape, *cp.Shape) bool {
	return false
}

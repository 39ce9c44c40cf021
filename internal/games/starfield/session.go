package starfield

import "github.com/vovakirdan/starcatcher/internal/core"

// session tracks the parts of a run that are not simulation state:
// pause, the optional time limit and whether the run has ended.
type session struct {
	paused     bool
	over       bool
	ticks      int
	limitTicks int // 0 = unlimited
}

func newSession(limitSecs, tickRate int) session {
	if tickRate <= 0 {
		tickRate = 60
	}
	limit := 0
	if limitSecs > 0 {
		limit = limitSecs * tickRate
	}
	return session{limitTicks: limit}
}

// begin handles the platform actions for a tick and reports whether the
// simulation should advance.
func (s *session) begin(in core.InputFrame) bool {
	if s.over {
		return false
	}
	if in.Has(core.ActionQuit) {
		s.over = true
		return false
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	return !s.paused
}

// end counts a completed tick and closes the session when time runs out.
func (s *session) end() {
	s.ticks++
	if s.limitTicks > 0 && s.ticks >= s.limitTicks {
		s.over = true
	}
}

// remainingSecs returns the seconds left, or -1 when unlimited.
func (s *session) remainingSecs(tickRate int) int {
	if s.limitTicks == 0 {
		return -1
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	left := s.limitTicks - s.ticks
	if left < 0 {
		left = 0
	}
	return (left + tickRate - 1) / tickRate
}

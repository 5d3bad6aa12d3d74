package gameplay

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeLost Outcome = "lost"
	OutcomeWon  Outcome = "won"
)

// Session is the per-run state. Over only ever goes from false to true;
// a restart replaces the whole session.
type Session struct {
	ID        uuid.UUID
	Score     int
	Over      bool
	Outcome   Outcome
	StartedAt time.Time
}

func NewSession(now time.Time) *Session {
	return &Session{ID: uuid.New(), StartedAt: now}
}

// AddScore adds points to a running session. Negative amounts and ended
// sessions are ignored.
func (s *Session) AddScore(points int) {
	if s.Over || points <= 0 {
		return
	}
	s.Score += points
}

// End moves the session to its terminal state. Only the first call counts.
func (s *Session) End(outcome Outcome) bool {
	if s.Over {
		return false
	}
	s.Over = true
	s.Outcome = outcome
	return true
}

// Result is the record of a finished session.
type Result struct {
	SessionID string
	Level     string
	Score     int
	Outcome   Outcome
	Duration  time.Duration
}

// ResultSaver persists finished sessions.
type ResultSaver interface {
	SaveResult(Result) error
}

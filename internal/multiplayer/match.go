package multiplayer

import "time"

// Match tracks one game from the first roll to the win (or abandonment).
// The platform creates a match per game and finishes it exactly once.
type Match struct {
	id       MatchID
	gameID   string
	players  int
	session  SessionID
	started  time.Time
	finished bool

	now func() time.Time
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID  MatchID
	GameID   string
	Mode     MatchMode
	Players  int
	Winner   int // 0 if abandoned
	Turns    int
	Reason   EndReason
	Session  SessionID
	Duration time.Duration
}

// ResultSaver persists finished matches. Storage implements it so the
// platform does not depend on a concrete database.
type ResultSaver interface {
	SaveMatchResult(result MatchResult) error
}

// NewMatch starts a match now.
func NewMatch(gameID string, players int, session SessionID) *Match {
	return newMatchAt(gameID, players, session, time.Now)
}

func newMatchAt(gameID string, players int, session SessionID, now func() time.Time) *Match {
	if session == "" {
		session = LocalSession
	}
	return &Match{
		id:      NewMatchID(),
		gameID:  gameID,
		players: players,
		session: session,
		started: now(),
		now:     now,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// GameID returns the registry id of the table variant.
func (m *Match) GameID() string {
	return m.gameID
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return ModeForPlayers(m.players)
}

// Players returns the seat count.
func (m *Match) Players() int {
	return m.players
}

// Session returns the owning session.
func (m *Match) Session() SessionID {
	return m.session
}

// StartedAt returns when the match began.
func (m *Match) StartedAt() time.Time {
	return m.started
}

// Finished reports whether Finish has been called.
func (m *Match) Finished() bool {
	return m.finished
}

// Finish closes the match and returns its result. The second return is false
// if the match was already finished, so callers can save at most once.
func (m *Match) Finish(winner, turns int, reason EndReason) (MatchResult, bool) {
	if m.finished {
		return MatchResult{}, false
	}
	m.finished = true
	if reason != EndCompleted {
		winner = 0
	}
	return MatchResult{
		MatchID:  m.id,
		GameID:   m.gameID,
		Mode:     m.Mode(),
		Players:  m.players,
		Winner:   winner,
		Turns:    turns,
		Reason:   reason,
		Session:  m.session,
		Duration: m.now().Sub(m.started),
	}, true
}

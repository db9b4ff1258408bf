// Package multiplayer describes who is sitting at a table and how a match
// ended. Snakes & Ladders is played hot-seat: one terminal, one session,
// up to four players passing the keyboard around.
package multiplayer

import "github.com/google/uuid"

// SessionID identifies a terminal session (local TTY or SSH connection).
type SessionID string

// LocalSession is the session id used for games started from the local CLI.
const LocalSession SessionID = "local"

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match id.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a match is seated.
type MatchMode int

const (
	// MatchModeSolo is a single player racing the board.
	MatchModeSolo MatchMode = iota

	// MatchModeHotSeat is 2-4 players sharing one keyboard.
	MatchModeHotSeat
)

// ModeForPlayers returns the mode for a seat count.
func ModeForPlayers(players int) MatchMode {
	if players <= 1 {
		return MatchModeSolo
	}
	return MatchModeHotSeat
}

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeHotSeat:
		return "Hot-seat"
	default:
		return "Unknown"
	}
}

// EndReason records why a match stopped.
type EndReason string

const (
	EndCompleted EndReason = "completed" // someone reached the last square
	EndAbandoned EndReason = "abandoned" // quit or disconnected before a win
)

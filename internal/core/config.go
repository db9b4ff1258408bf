package core

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed, 0 = time-based
	Players  int   // Number of seats at the table (1-4), 0 = game default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
		Players:  2,
	}
}

// GameState is the platform-facing summary of a game.
type GameState struct {
	GameOver bool // Someone has won
	Paused   bool // Paused or window too small
	Busy     bool // Still playing back the events of the last turn
	Winner   int  // Winning player id, 0 while in progress
	Turns    int  // Turns played this game
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}

package engine

import (
	"math/rand"
	"time"
)

// Die faces.
const (
	MinRoll = 1
	MaxRoll = 6
)

// Dice is the randomness source for rolls.
// Roll must return a value in [MinRoll, MaxRoll].
type Dice interface {
	Roll() int
}

// RandDice is a seeded six-sided die. Not safe for concurrent use; each engine
// owns its own.
type RandDice struct {
	rng *rand.Rand
}

// NewRandDice creates a die. Seed 0 means seed from the current time.
func NewRandDice(seed int64) *RandDice {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandDice{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniformly distributed value in [1, 6].
func (d *RandDice) Roll() int {
	return d.rng.Intn(MaxRoll-MinRoll+1) + MinRoll
}

// SequenceDice replays a fixed list of rolls, cycling when exhausted.
// Used for demos and tests.
type SequenceDice struct {
	rolls []int
	next  int
}

// NewSequenceDice creates a die that yields rolls in order.
func NewSequenceDice(rolls ...int) *SequenceDice {
	return &SequenceDice{rolls: rolls}
}

// Roll returns the next value in the sequence, or MinRoll for an empty sequence.
func (d *SequenceDice) Roll() int {
	if len(d.rolls) == 0 {
		return MinRoll
	}
	v := d.rolls[d.next%len(d.rolls)]
	d.next++
	return v
}

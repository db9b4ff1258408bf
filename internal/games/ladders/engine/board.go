package engine

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultBoardSize is the number of squares on the standard board.
const DefaultBoardSize = 100

// BoardConfig describes the board topology: its size and the two jump tables.
type BoardConfig struct {
	Size    int
	Snakes  map[int]int // head -> tail, head > tail
	Ladders map[int]int // bottom -> top, bottom < top
}

// DefaultBoard returns the fixed 100-square board with 10 snakes and 9 ladders.
func DefaultBoard() BoardConfig {
	return BoardConfig{
		Size: DefaultBoardSize,
		Snakes: map[int]int{
			16: 6, 47: 26, 49: 11, 56: 53, 62: 19,
			64: 60, 87: 24, 93: 73, 95: 75, 98: 78,
		},
		Ladders: map[int]int{
			1: 38, 4: 14, 9: 21, 21: 42, 28: 84,
			36: 44, 51: 67, 71: 91, 80: 100,
		},
	}
}

// IsZero reports whether the config was left unset.
func (b BoardConfig) IsZero() bool {
	return b.Size == 0 && len(b.Snakes) == 0 && len(b.Ladders) == 0
}

// Clone returns a deep copy so callers cannot mutate engine-owned maps.
func (b BoardConfig) Clone() BoardConfig {
	return BoardConfig{
		Size:    b.Size,
		Snakes:  maps.Clone(b.Snakes),
		Ladders: maps.Clone(b.Ladders),
	}
}

// Validate checks the board invariants. Hard violations return a *ConfigError.
// Chained jumps (a destination that is also a source in the same table) are
// legal but reported as warnings, since resolution only ever applies one hop.
func (b BoardConfig) Validate() (warnings []string, err error) {
	if b.Size < 2 {
		return nil, configErrorf("size", "board needs at least 2 squares, got %d", b.Size)
	}

	for _, head := range sortedKeys(b.Snakes) {
		tail := b.Snakes[head]
		if !b.onBoard(head) || !b.onBoard(tail) {
			return nil, configErrorf("snakes", "snake %d->%d is off the board [1, %d]", head, tail, b.Size)
		}
		if head <= tail {
			return nil, configErrorf("snakes", "snake head %d must be above its tail %d", head, tail)
		}
		if _, ok := b.Ladders[head]; ok {
			return nil, configErrorf("snakes", "square %d is both a snake head and a ladder bottom", head)
		}
		if _, ok := b.Snakes[tail]; ok {
			warnings = append(warnings, fmt.Sprintf("snake %d->%d ends on another snake head", head, tail))
		}
	}

	for _, bottom := range sortedKeys(b.Ladders) {
		top := b.Ladders[bottom]
		if !b.onBoard(bottom) || !b.onBoard(top) {
			return nil, configErrorf("ladders", "ladder %d->%d is off the board [1, %d]", bottom, top, b.Size)
		}
		if bottom >= top {
			return nil, configErrorf("ladders", "ladder bottom %d must be below its top %d", bottom, top)
		}
		if _, ok := b.Ladders[top]; ok {
			warnings = append(warnings, fmt.Sprintf("ladder %d->%d ends on another ladder bottom", bottom, top))
		}
	}

	return warnings, nil
}

func (b BoardConfig) onBoard(square int) bool {
	return square >= 1 && square <= b.Size
}

// SquareKind classifies a square by its role in the jump tables.
type SquareKind int

const (
	SquarePlain SquareKind = iota
	SquareSnakeHead
	SquareSnakeTail
	SquareLadderBottom
	SquareLadderTop
)

// SquareInfo describes a single square. Partner is the other end of the jump,
// or 0 for plain squares.
type SquareInfo struct {
	Square  int
	Kind    SquareKind
	Partner int
}

// Describe returns a one-line description suitable for a status bar.
func (s SquareInfo) Describe() string {
	switch s.Kind {
	case SquareSnakeHead:
		return fmt.Sprintf("Snake head on %d, slides down to %d", s.Square, s.Partner)
	case SquareSnakeTail:
		return fmt.Sprintf("Snake tail on %d, from %d", s.Square, s.Partner)
	case SquareLadderBottom:
		return fmt.Sprintf("Ladder bottom on %d, climbs up to %d", s.Square, s.Partner)
	case SquareLadderTop:
		return fmt.Sprintf("Ladder top on %d, from %d", s.Square, s.Partner)
	default:
		return fmt.Sprintf("Square %d", s.Square)
	}
}

// Info classifies a square. Sources win over destinations, snakes over ladders,
// and the lowest partner is reported when several jumps end on the same square.
func (b BoardConfig) Info(square int) SquareInfo {
	if tail, ok := b.Snakes[square]; ok {
		return SquareInfo{Square: square, Kind: SquareSnakeHead, Partner: tail}
	}
	if top, ok := b.Ladders[square]; ok {
		return SquareInfo{Square: square, Kind: SquareLadderBottom, Partner: top}
	}
	for _, head := range sortedKeys(b.Snakes) {
		if b.Snakes[head] == square {
			return SquareInfo{Square: square, Kind: SquareSnakeTail, Partner: head}
		}
	}
	for _, bottom := range sortedKeys(b.Ladders) {
		if b.Ladders[bottom] == square {
			return SquareInfo{Square: square, Kind: SquareLadderTop, Partner: bottom}
		}
	}
	return SquareInfo{Square: square, Kind: SquarePlain}
}

func sortedKeys(m map[int]int) []int {
	return slices.Sorted(maps.Keys(m))
}

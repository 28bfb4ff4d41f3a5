package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Mark is the content of a single board cell.
type Mark int

const (
	Empty Mark = iota
	PlayerX
	PlayerO
)

var ErrUnknownMark = errors.New("unknown mark")

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

// ParseMark - converts "X", "O" or "" into a Mark.
func ParseMark(value string) (Mark, error) {
	switch value {
	case "":
		return Empty, nil
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, value)
	}
}

// Coord addresses a cell as (row, col).
type Coord struct {
	Row int
	Col int
}

// MarshalJSON encodes a coordinate as a [row, col] pair.
func (that Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Coord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal coord: %w", err)
	}

	that.Row, that.Col = pair[0], pair[1]

	return nil
}

// Move is one applied placement, kept on the history stack.
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned when a move is not legal in the current position.
var ErrIllegalMove = errors.New("illegal move")

// ParseError reports a malformed textual position record.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// RangeError reports board coordinates outside [0,7].
type RangeError struct {
	File, Rank int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("coordinates out of range: file=%d rank=%d", e.File, e.Rank)
}

// Package board enumerates the FPGA boards the platform can be configured for.
package board

import (
	"encoding"
	"fmt"
)

type Board string

const (
	TangNano9K  Board = "9k"
	TangNano20K Board = "20k"
)

// All returns the supported boards in the order they are presented to users.
func All() []Board {
	return []Board{TangNano9K, TangNano20K}
}

// String returns the string representation of Board
func (rcv Board) String() string {
	return string(rcv)
}

// Description returns the marketing name of the board.
func (rcv Board) Description() string {
	switch rcv {
	case TangNano9K:
		return "Tang Nano 9K"
	case TangNano20K:
		return "Tang Nano 20K"
	}
	return ""
}

// Parse returns the Board named by s. There is no default board.
func Parse(s string) (Board, error) {
	var b Board
	if err := b.UnmarshalBinary([]byte(s)); err != nil {
		return "", err
	}
	return b, nil
}

var _ encoding.BinaryUnmarshaler = new(Board)

// UnmarshalBinary implements encoding.BinaryUnmarshaler for Board.
func (rcv *Board) UnmarshalBinary(data []byte) error {
	switch str := string(data); str {
	case "9k":
		*rcv = TangNano9K
	case "20k":
		*rcv = TangNano20K
	default:
		return fmt.Errorf(`illegal: "%s" is not a valid Board`, str)
	}
	return nil
}

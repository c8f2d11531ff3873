package war

import "errors"

var (
	// ErrUnevenDeal is returned when the deck cannot be split evenly between players
	ErrUnevenDeal = errors.New("unable to split cards evenly between players")
	// ErrInvalidConfig is returned for out of range game settings
	ErrInvalidConfig = errors.New("invalid game configuration")
	// ErrDeckSize is returned when an arranged deck has the wrong number of cards
	ErrDeckSize = errors.New("arranged deck has the wrong size")
)

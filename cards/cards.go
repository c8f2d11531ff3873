package cards

import (
	"fmt"
	"strings"
)

// Rank is a card rank. Ranks are ordered, None lowest and Ace highest.
type Rank uint8

// Rank constants in win order
const (
	None Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit is ornamental in War and never breaks ties
type Suit uint8

// Suit constants
const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Ranks lists every playable rank in ascending order
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Suits lists every suit
var Suits = [...]Suit{Spades, Clubs, Hearts, Diamonds}

// Value returns the rank's position in the win order (None = 0, Ace = 13)
func (r Rank) Value() int {
	if r > Ace {
		return 0
	}
	return int(r)
}

func (r Rank) String() string {
	switch r {
	case None:
		return "None"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r)+1)
	}
	return "?"
}

// Short returns the one-character rank code ("T" for ten)
func (r Rank) Short() string {
	const codes = "-23456789TJQKA"
	if r > Ace {
		return "?"
	}
	return string(codes[r])
}

func (s Suit) String() string {
	switch s {
	case Spades:
		return "Spades"
	case Clubs:
		return "Clubs"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	}
	return "?"
}

// Short returns the one-character suit code
func (s Suit) Short() string {
	const codes = "SCHD"
	if s > Diamonds {
		return "?"
	}
	return string(codes[s])
}

// Red reports whether the suit is printed in red
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Card is an immutable rank and suit pair
type Card struct {
	Rank Rank
	Suit Suit
}

// NoCard is the placeholder a lost player contributes to a round
var NoCard = Card{Rank: None}

// New creates a card
func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// IsNone reports whether c is the NoCard placeholder
func (c Card) IsNone() bool {
	return c.Rank == None
}

// Value is shorthand for c.Rank.Value()
func (c Card) Value() int {
	return c.Rank.Value()
}

// String returns e.g. "King of Spades"
func (c Card) String() string {
	if c.IsNone() {
		return "nothing"
	}
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short returns the two-character code, e.g. "KS" or "TD"
func (c Card) Short() string {
	if c.IsNone() {
		return "--"
	}
	return c.Rank.Short() + c.Suit.Short()
}

// ParseCard parses a two-character code like "AS" or "th" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 && s[:2] == "10" {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return NoCard, fmt.Errorf("invalid card string: %q", s)
	}

	var rank Rank
	switch s[0] {
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return NoCard, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'S', 's':
		suit = Spades
	case 'C', 'c':
		suit = Clubs
	case 'H', 'h':
		suit = Hearts
	case 'D', 'd':
		suit = Diamonds
	default:
		return NoCard, fmt.Errorf("invalid suit: %c", s[1])
	}

	return New(rank, suit), nil
}

// MustParseCards parses a space separated list of card codes and panics on
// error. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// ParseCards parses a list of card codes
func ParseCards(codes []string) ([]Card, error) {
	out := make([]Card, 0, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

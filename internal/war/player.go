package war

import (
	"math/rand"

	"github.com/lox/warsim/cards"
)

// Player holds a face-down draw pile and a pile of won cards
type Player struct {
	draw []cards.Card
	win  []cards.Card
	lost bool
	rng  *rand.Rand
}

// NewPlayer creates a player owning the given draw pile. rng is used when
// the win pile is shuffled back in; nil uses the process source.
func NewPlayer(draw []cards.Card, rng *rand.Rand) *Player {
	return &Player{
		draw: append([]cards.Card(nil), draw...),
		rng:  rng,
	}
}

// Play removes and returns the first n cards of the draw pile. Fewer cards
// are returned when the pile is short. n below one plays a single card.
func (p *Player) Play(n int) []cards.Card {
	if n < 1 {
		n = 1
	}
	if n > len(p.draw) {
		n = len(p.draw)
	}
	played := make([]cards.Card, n)
	copy(played, p.draw[:n])
	p.draw = p.draw[n:]
	return played
}

// AddWinToDeck moves the win pile under the draw pile, optionally shuffling
// the win pile first, and returns how many cards moved.
func (p *Player) AddWinToDeck(shuffle bool) int {
	moved := len(p.win)
	if moved == 0 {
		return 0
	}
	if shuffle {
		cards.Shuffle(p.win, 1, p.rng)
	}
	p.draw = append(p.draw, p.win...)
	p.win = p.win[:0]
	return moved
}

// TotalCards is the size of both piles together
func (p *Player) TotalCards() int {
	return len(p.draw) + len(p.win)
}

// DrawCount returns the number of face-down cards
func (p *Player) DrawCount() int { return len(p.draw) }

// WinCount returns the number of cards waiting in the win pile
func (p *Player) WinCount() int { return len(p.win) }

// Lost reports whether the player has been eliminated
func (p *Player) Lost() bool { return p.lost }

// DrawPile returns a copy of the draw pile, top card first
func (p *Player) DrawPile() []cards.Card {
	return append([]cards.Card(nil), p.draw...)
}

// WinPile returns a copy of the win pile
func (p *Player) WinPile() []cards.Card {
	return append([]cards.Card(nil), p.win...)
}

func (p *Player) takeWinnings(won []cards.Card) int {
	n := 0
	for _, c := range won {
		if c.IsNone() {
			continue
		}
		p.win = append(p.win, c)
		n++
	}
	return n
}

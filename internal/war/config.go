package war

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/lox/warsim/cards"
)

// Defaults applied to zero Config fields
const (
	DefaultPlayers          = 2
	DefaultDecks            = 1
	DefaultWarCards         = 4
	DefaultMaxRoundsPerDeck = 1000
	DefaultShuffleTimes     = 1
)

// Config holds the settings recognised when building a game. Zero values
// take the package defaults.
type Config struct {
	Players          int // number of participants, must divide 52*Decks
	Decks            int // standard decks merged into the shared deck
	WarCards         int // cards each tied player adds per war
	MaxRoundsPerDeck int // round cap is MaxRoundsPerDeck*Decks
	ShuffleTimes     int // shuffle passes over the deck at construction
	NoRecycleShuffle bool
}

// WithDefaults returns a copy of c with zero fields filled in
func (c Config) WithDefaults() Config {
	if c.Players == 0 {
		c.Players = DefaultPlayers
	}
	if c.Decks == 0 {
		c.Decks = DefaultDecks
	}
	if c.WarCards == 0 {
		c.WarCards = DefaultWarCards
	}
	if c.MaxRoundsPerDeck == 0 {
		c.MaxRoundsPerDeck = DefaultMaxRoundsPerDeck
	}
	if c.ShuffleTimes == 0 {
		c.ShuffleTimes = DefaultShuffleTimes
	}
	return c
}

// Validate checks a defaulted config
func (c Config) Validate() error {
	if c.Players < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidConfig, c.Players)
	}
	if c.Decks < 1 {
		return fmt.Errorf("%w: need at least 1 deck, got %d", ErrInvalidConfig, c.Decks)
	}
	if c.WarCards < 1 {
		return fmt.Errorf("%w: war cards must be positive, got %d", ErrInvalidConfig, c.WarCards)
	}
	if c.MaxRoundsPerDeck < 1 {
		return fmt.Errorf("%w: max rounds per deck must be positive, got %d", ErrInvalidConfig, c.MaxRoundsPerDeck)
	}
	if c.ShuffleTimes < 0 {
		return fmt.Errorf("%w: shuffle times must not be negative, got %d", ErrInvalidConfig, c.ShuffleTimes)
	}
	if total := cards.DeckSize * c.Decks; total%c.Players != 0 {
		return fmt.Errorf("%w: %d cards across %d players", ErrUnevenDeal, total, c.Players)
	}
	return nil
}

// DeckSize is the total number of cards in play
func (c Config) DeckSize() int {
	return cards.DeckSize * c.Decks
}

// MaxRounds is the iteration cap for PlayGame
func (c Config) MaxRounds() int {
	return c.MaxRoundsPerDeck * c.Decks
}

// Option customises a Game at construction
type Option func(*options)

type options struct {
	rng         *rand.Rand
	logger      *log.Logger
	deck        []cards.Card
	subscribers []EventSubscriber
}

// WithRNG injects the random source used for every shuffle
func WithRNG(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDeck deals a pre-arranged deck instead of a shuffled one. The deck is
// copied.
func WithDeck(deck []cards.Card) Option {
	return func(o *options) {
		o.deck = append([]cards.Card(nil), deck...)
	}
}

// WithSubscriber registers an event subscriber before the deal, so it sees
// the game start event.
func WithSubscriber(sub EventSubscriber) Option {
	return func(o *options) { o.subscribers = append(o.subscribers, sub) }
}

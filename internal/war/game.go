package war

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/warsim/cards"
)

// Game deals a shared deck between players and plays War rounds until one
// player holds every card or the round cap is reached.
type Game struct {
	cfg      Config
	players  []*Player
	pots     [][]cards.Card
	deckSize int
	rng      *rand.Rand
	logger   *log.Logger
	eventBus EventBus

	round      int
	wars       int
	longestWar int
	pushes     int
}

// RoundResult describes one call to Step
type RoundResult struct {
	Round  int
	Winner int // -1 on a push or when the game was already over
	Cards  int // cards awarded to the winner
	Wars   int
}

// Result is the outcome of PlayGame
type Result struct {
	Winner     int // zero-based player index, -1 when nobody won
	Rounds     int
	Wars       int
	LongestWar int
	Pushes     int
	TimedOut   bool
	CardCounts []int
}

// NewGame validates cfg, builds and shuffles the deck and deals it into
// equal contiguous slices, one per player.
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	deck := o.deck
	if deck == nil {
		deck = cards.Shuffle(cards.NewDeck(cfg.Decks), cfg.ShuffleTimes, o.rng)
	} else if len(deck) != cfg.DeckSize() {
		return nil, fmt.Errorf("%w: got %d cards, want %d", ErrDeckSize, len(deck), cfg.DeckSize())
	}

	g := &Game{
		cfg:      cfg,
		players:  make([]*Player, cfg.Players),
		pots:     make([][]cards.Card, cfg.Players),
		deckSize: len(deck),
		rng:      o.rng,
		logger:   o.logger,
	}
	for _, sub := range o.subscribers {
		g.eventBus.Subscribe(sub)
	}

	each := len(deck) / cfg.Players
	for i := range g.players {
		g.players[i] = NewPlayer(deck[i*each:(i+1)*each], o.rng)
	}

	g.logger.Debug("Dealt deck", "players", cfg.Players, "decks", cfg.Decks, "cardsEach", each)
	g.eventBus.Publish(GameStartEvent{
		Players:   cfg.Players,
		Decks:     cfg.Decks,
		CardsEach: each,
		timestamp: time.Now(),
	})

	return g, nil
}

// Subscribe registers an event subscriber
func (g *Game) Subscribe(sub EventSubscriber) {
	g.eventBus.Subscribe(sub)
}

// Config returns the defaulted configuration the game was built with
func (g *Game) Config() Config { return g.cfg }

// Players returns the players in seat order
func (g *Game) Players() []*Player { return g.players }

// Player returns the player at index i
func (g *Game) Player(i int) *Player { return g.players[i] }

// Round returns the number of rounds played
func (g *Game) Round() int { return g.round }

// DeckSize is the number of cards dealt at construction
func (g *Game) DeckSize() int { return g.deckSize }

// PotSizes returns the number of cards in each player's pot slot
func (g *Game) PotSizes() []int {
	sizes := make([]int, len(g.pots))
	for i, pot := range g.pots {
		for _, c := range pot {
			if !c.IsNone() {
				sizes[i]++
			}
		}
	}
	return sizes
}

// CardsInPlay counts every card held by players or sitting in pots. It
// always equals DeckSize.
func (g *Game) CardsInPlay() int {
	total := 0
	for _, p := range g.players {
		total += p.TotalCards()
	}
	for _, n := range g.PotSizes() {
		total += n
	}
	return total
}

// Active returns the number of players who have not lost
func (g *Game) Active() int {
	n := 0
	for _, p := range g.players {
		if !p.lost {
			n++
		}
	}
	return n
}

// Done reports whether PlayGame would stop now
func (g *Game) Done() bool {
	return g.Active() <= 1 || g.round >= g.cfg.MaxRounds()
}

// Step plays a single round. Calling Step with fewer than two active
// players does nothing.
func (g *Game) Step() RoundResult {
	if g.Active() < 2 {
		return RoundResult{Round: g.round, Winner: -1}
	}
	g.round++
	result := RoundResult{Round: g.round, Winner: -1}

	everyone := make([]int, 0, len(g.players))
	for i, p := range g.players {
		card := cards.NoCard
		if !p.lost {
			if played := p.Play(1); len(played) == 1 {
				card = played[0]
			}
		}
		g.pots[i] = append(g.pots[i], card)
		everyone = append(everyone, i)

		g.logger.Debug("Card played", "round", g.round, "player", i+1, "card", card)
		g.eventBus.Publish(CardPlayedEvent{Round: g.round, Player: i, Card: card, timestamp: time.Now()})
	}

	tied := g.leaders(everyone)
	for len(tied) > 1 {
		result.Wars++
		g.logger.Debug("War", "round", g.round, "war", result.Wars, "players", tied)
		g.eventBus.Publish(WarEvent{
			Round:        g.round,
			War:          result.Wars,
			Participants: append([]int(nil), tied...),
			timestamp:    time.Now(),
		})
		tied = g.war(tied, result.Wars)
	}

	g.wars += result.Wars
	g.longestWar = max(g.longestWar, result.Wars)

	if len(tied) == 1 {
		result.Winner = tied[0]
		result.Cards = g.awardPot(result.Winner)
		g.logger.Debug("Round won", "round", g.round, "player", result.Winner+1, "cards", result.Cards, "wars", result.Wars)
		g.eventBus.Publish(RoundWonEvent{
			Round:     g.round,
			Winner:    result.Winner,
			Cards:     result.Cards,
			Wars:      result.Wars,
			timestamp: time.Now(),
		})
	} else {
		g.pushes++
		g.returnPots()
		g.logger.Debug("Push", "round", g.round, "wars", result.Wars)
		g.eventBus.Publish(PushEvent{Round: g.round, Wars: result.Wars, timestamp: time.Now()})
	}

	g.checkPlayers(1)
	return result
}

// war has each participant put down WarCards more cards and returns the
// players still tied at the top. Every active player short of WarCards
// recycles first. Players with nothing to put down forfeit.
func (g *Game) war(participants []int, warNo int) []int {
	for i, p := range g.players {
		if !p.lost && p.DrawCount() < g.cfg.WarCards {
			g.recycle(i)
		}
	}

	var contenders []int
	for _, i := range participants {
		p := g.players[i]
		played := p.Play(g.cfg.WarCards)
		g.pots[i] = append(g.pots[i], played...)
		g.eventBus.Publish(WarCardsEvent{
			Round:     g.round,
			War:       warNo,
			Player:    i,
			Cards:     played,
			Forfeit:   len(played) == 0,
			timestamp: time.Now(),
		})
		if len(played) == 0 {
			g.logger.Debug("Player forfeits war", "round", g.round, "player", i+1)
			continue
		}
		contenders = append(contenders, i)
	}
	return g.leaders(contenders)
}

// leaders returns the candidates whose pot top has the highest value.
// The NoCard placeholder never leads.
func (g *Game) leaders(candidates []int) []int {
	best := 0
	var top []int
	for _, i := range candidates {
		v := g.topValue(i)
		switch {
		case v == 0:
		case v > best:
			best = v
			top = append(top[:0], i)
		case v == best:
			top = append(top, i)
		}
	}
	return top
}

func (g *Game) topValue(i int) int {
	pot := g.pots[i]
	if len(pot) == 0 {
		return 0
	}
	return pot[len(pot)-1].Value()
}

func (g *Game) awardPot(winner int) int {
	won := 0
	for i, pot := range g.pots {
		won += g.players[winner].takeWinnings(pot)
		g.pots[i] = g.pots[i][:0]
	}
	return won
}

func (g *Game) returnPots() {
	for i, pot := range g.pots {
		g.players[i].takeWinnings(pot)
		g.pots[i] = g.pots[i][:0]
	}
}

func (g *Game) recycle(i int) {
	moved := g.players[i].AddWinToDeck(!g.cfg.NoRecycleShuffle)
	if moved == 0 {
		return
	}
	g.logger.Debug("Recycled win pile", "player", i+1, "cards", moved)
	g.eventBus.Publish(RecycleEvent{Player: i, Moved: moved, timestamp: time.Now()})
}

// checkPlayers recycles every active player holding fewer than minimum
// face-down cards and eliminates anyone left with an empty draw pile.
func (g *Game) checkPlayers(minimum int) {
	for i, p := range g.players {
		if p.lost || p.DrawCount() >= minimum {
			continue
		}
		g.recycle(i)
		if p.DrawCount() == 0 {
			p.lost = true
			g.logger.Debug("Player eliminated", "round", g.round, "player", i+1)
			g.eventBus.Publish(EliminatedEvent{Round: g.round, Player: i, timestamp: time.Now()})
		}
	}
}

// PlayGame steps until one player is left or the round cap is reached
func (g *Game) PlayGame() Result {
	result, _ := g.PlayGameContext(context.Background())
	return result
}

// PlayGameContext is PlayGame with cancellation checked between rounds. On
// cancellation the partial result is returned with the context error.
func (g *Game) PlayGameContext(ctx context.Context) (Result, error) {
	for !g.Done() {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		g.Step()
	}

	result := g.Result()
	if result.TimedOut {
		g.logger.Info("Game timed out", "rounds", result.Rounds, "wars", result.Wars)
	} else {
		g.logger.Info("Game over", "winner", result.Winner+1, "rounds", result.Rounds, "wars", result.Wars)
	}
	g.eventBus.Publish(GameOverEvent{Result: result, timestamp: time.Now()})
	return result, nil
}

// Result summarises the game so far
func (g *Game) Result() Result {
	result := Result{
		Winner:     -1,
		Rounds:     g.round,
		Wars:       g.wars,
		LongestWar: g.longestWar,
		Pushes:     g.pushes,
		CardCounts: make([]int, len(g.players)),
	}
	for i, p := range g.players {
		result.CardCounts[i] = p.TotalCards()
		if g.Active() == 1 && !p.lost {
			result.Winner = i
		}
	}
	result.TimedOut = g.Active() > 1 && g.round >= g.cfg.MaxRounds()
	return result
}

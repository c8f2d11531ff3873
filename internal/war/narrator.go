package war

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Describe renders an event as a plain narration line. Events with nothing
// worth saying return "".
func Describe(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return fmt.Sprintf("Each player has %d cards in their decks.", e.CardsEach)
	case CardPlayedEvent:
		if e.Card.IsNone() {
			return fmt.Sprintf("Player %d couldn't play anything!", e.Player+1)
		}
		return fmt.Sprintf("Player %d played a %s.", e.Player+1, e.Card)
	case WarEvent:
		return fmt.Sprintf("War #%d between %s!", e.War, playerList(e.Participants))
	case WarCardsEvent:
		if e.Forfeit {
			return fmt.Sprintf("Player %d has nothing left to fight with.", e.Player+1)
		}
		return fmt.Sprintf("Player %d puts down %d card(s), showing a %s.", e.Player+1, len(e.Cards), e.Top())
	case RoundWonEvent:
		if e.Wars > 0 {
			return fmt.Sprintf("A war broke out (%d time(s)) and Player %d was the victor!", e.Wars, e.Winner+1)
		}
		return fmt.Sprintf("Player %d has won this turn without contest!", e.Winner+1)
	case PushEvent:
		return fmt.Sprintf("Nobody could finish the war (%d time(s)); every pot goes back to its owner.", e.Wars)
	case RecycleEvent:
		return fmt.Sprintf("Player %d added %d cards in to their deck.", e.Player+1, e.Moved)
	case EliminatedEvent:
		return fmt.Sprintf("Player %d is out of cards!", e.Player+1)
	case GameOverEvent:
		if e.Result.Winner < 0 {
			return "The game timed out!"
		}
		return fmt.Sprintf("After %d turns, Player %d has won the game!", e.Result.Rounds, e.Result.Winner+1)
	}
	return ""
}

func playerList(players []int) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = fmt.Sprintf("Player %d", p+1)
	}
	if len(names) <= 2 {
		return strings.Join(names, " and ")
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// Narrator logs a human readable line for every event
type Narrator struct {
	logger *log.Logger
}

// NewNarrator creates a narrator writing through logger
func NewNarrator(logger *log.Logger) *Narrator {
	return &Narrator{logger: logger.WithPrefix("war")}
}

// OnEvent implements EventSubscriber
func (n *Narrator) OnEvent(event GameEvent) {
	line := Describe(event)
	if line == "" {
		return
	}
	switch e := event.(type) {
	case CardPlayedEvent, WarCardsEvent:
		n.logger.Debug(line)
	case RoundWonEvent:
		n.logger.Info(line, "round", e.Round, "cards", e.Cards)
	case GameOverEvent:
		n.logger.Info(line, "rounds", e.Result.Rounds, "wars", e.Result.Wars)
	default:
		n.logger.Info(line)
	}
}

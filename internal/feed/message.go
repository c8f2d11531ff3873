package feed

import (
	"time"

	"github.com/lox/warsim/cards"
	"github.com/lox/warsim/internal/war"
)

// Message is the JSON form of a game event. Player numbers are one-based;
// zero means "not applicable".
type Message struct {
	Type         string    `json:"type"`
	Time         time.Time `json:"time"`
	Game         int       `json:"game,omitempty"`
	Round        int       `json:"round,omitempty"`
	Player       int       `json:"player,omitempty"`
	Card         string    `json:"card,omitempty"`
	Cards        []string  `json:"cards,omitempty"`
	War          int       `json:"war,omitempty"`
	Participants []int     `json:"participants,omitempty"`
	Winner       int       `json:"winner,omitempty"`
	Count        int       `json:"count,omitempty"`
	Wars         int       `json:"wars,omitempty"`
	TimedOut     bool      `json:"timed_out,omitempty"`
	Text         string    `json:"text,omitempty"`
}

// NewMessage converts a game event for the wire
func NewMessage(event war.GameEvent) Message {
	msg := Message{
		Type: event.EventType().String(),
		Time: event.Timestamp(),
		Text: war.Describe(event),
	}

	switch e := event.(type) {
	case war.GameStartEvent:
		msg.Count = e.CardsEach
	case war.CardPlayedEvent:
		msg.Round = e.Round
		msg.Player = e.Player + 1
		msg.Card = e.Card.Short()
	case war.WarEvent:
		msg.Round = e.Round
		msg.War = e.War
		msg.Participants = make([]int, len(e.Participants))
		for i, p := range e.Participants {
			msg.Participants[i] = p + 1
		}
	case war.WarCardsEvent:
		msg.Round = e.Round
		msg.War = e.War
		msg.Player = e.Player + 1
		msg.Cards = shortCodes(e.Cards)
	case war.RoundWonEvent:
		msg.Round = e.Round
		msg.Winner = e.Winner + 1
		msg.Count = e.Cards
		msg.Wars = e.Wars
	case war.PushEvent:
		msg.Round = e.Round
		msg.Wars = e.Wars
	case war.RecycleEvent:
		msg.Player = e.Player + 1
		msg.Count = e.Moved
	case war.EliminatedEvent:
		msg.Round = e.Round
		msg.Player = e.Player + 1
	case war.GameOverEvent:
		msg.Round = e.Result.Rounds
		msg.Winner = e.Result.Winner + 1
		msg.Wars = e.Result.Wars
		msg.TimedOut = e.Result.TimedOut
	}
	return msg
}

func shortCodes(cs []cards.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Short()
	}
	return out
}

package war

import (
	"time"

	"github.com/lox/warsim/cards"
)

// EventType identifies a game event
type EventType string

// Event types published by the engine
const (
	EventTypeGameStart  EventType = "game_start"
	EventTypeCardPlayed EventType = "card_played"
	EventTypeWar        EventType = "war"
	EventTypeWarCards   EventType = "war_cards"
	EventTypeRoundWon   EventType = "round_won"
	EventTypePush       EventType = "push"
	EventTypeRecycle    EventType = "recycle"
	EventTypeEliminated EventType = "eliminated"
	EventTypeGameOver   EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engine reports while playing
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the deck has been dealt
type GameStartEvent struct {
	Players   int
	Decks     int
	CardsEach int
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published for each player's face-up card at the start
// of a round. Card is cards.NoCard for a player who has lost.
type CardPlayedEvent struct {
	Round     int
	Player    int
	Card      cards.Card
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// WarEvent is published when a tie starts (or continues) a war
type WarEvent struct {
	Round        int
	War          int // 1 for the first war of the round
	Participants []int
	timestamp    time.Time
}

func (e WarEvent) EventType() EventType { return EventTypeWar }
func (e WarEvent) Timestamp() time.Time { return e.timestamp }

// WarCardsEvent is published for each participant's war contribution.
// Forfeit is set when the player had nothing left to put down.
type WarCardsEvent struct {
	Round     int
	War       int
	Player    int
	Cards     []cards.Card
	Forfeit   bool
	timestamp time.Time
}

func (e WarCardsEvent) EventType() EventType { return EventTypeWarCards }
func (e WarCardsEvent) Timestamp() time.Time { return e.timestamp }

// Top returns the card that decides this contribution
func (e WarCardsEvent) Top() cards.Card {
	if len(e.Cards) == 0 {
		return cards.NoCard
	}
	return e.Cards[len(e.Cards)-1]
}

// RoundWonEvent is published when a round's pot is awarded
type RoundWonEvent struct {
	Round     int
	Winner    int
	Cards     int
	Wars      int
	timestamp time.Time
}

func (e RoundWonEvent) EventType() EventType { return EventTypeRoundWon }
func (e RoundWonEvent) Timestamp() time.Time { return e.timestamp }

// PushEvent is published when every war participant ran dry and the pots
// went back to their owners
type PushEvent struct {
	Round     int
	Wars      int
	timestamp time.Time
}

func (e PushEvent) EventType() EventType { return EventTypePush }
func (e PushEvent) Timestamp() time.Time { return e.timestamp }

// RecycleEvent is published when a player's win pile is moved under the draw pile
type RecycleEvent struct {
	Player    int
	Moved     int
	timestamp time.Time
}

func (e RecycleEvent) EventType() EventType { return EventTypeRecycle }
func (e RecycleEvent) Timestamp() time.Time { return e.timestamp }

// EliminatedEvent is published when a player runs out of cards
type EliminatedEvent struct {
	Round     int
	Player    int
	timestamp time.Time
}

func (e EliminatedEvent) EventType() EventType { return EventTypeEliminated }
func (e EliminatedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when PlayGame finishes
type GameOverEvent struct {
	Result    Result
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus fans events out to subscribers in registration order
type EventBus struct {
	subscribers []EventSubscriber
}

// Subscribe adds a subscriber to receive events
func (bus *EventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *EventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// Recorder is an EventSubscriber that keeps every event it sees
type Recorder struct {
	Events []GameEvent
}

// OnEvent implements EventSubscriber
func (r *Recorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.Events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

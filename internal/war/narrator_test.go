package war

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/warsim/cards"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	king := cards.New(cards.King, cards.Spades)
	tests := []struct {
		event GameEvent
		want  string
	}{
		{GameStartEvent{CardsEach: 26}, "Each player has 26 cards in their decks."},
		{CardPlayedEvent{Player: 0, Card: king}, "Player 1 played a King of Spades."},
		{CardPlayedEvent{Player: 2, Card: cards.NoCard}, "Player 3 couldn't play anything!"},
		{WarEvent{War: 1, Participants: []int{0, 1}}, "War #1 between Player 1 and Player 2!"},
		{WarEvent{War: 2, Participants: []int{0, 2, 3}}, "War #2 between Player 1, Player 3 and Player 4!"},
		{WarCardsEvent{Player: 1, Cards: cards.MustParseCards("2H 3H 4H AH")}, "Player 2 puts down 4 card(s), showing a Ace of Hearts."},
		{WarCardsEvent{Player: 1, Forfeit: true}, "Player 2 has nothing left to fight with."},
		{RoundWonEvent{Winner: 0, Wars: 0}, "Player 1 has won this turn without contest!"},
		{RoundWonEvent{Winner: 1, Wars: 2}, "A war broke out (2 time(s)) and Player 2 was the victor!"},
		{RecycleEvent{Player: 0, Moved: 7}, "Player 1 added 7 cards in to their deck."},
		{EliminatedEvent{Player: 3}, "Player 4 is out of cards!"},
		{GameOverEvent{Result: Result{Winner: 0, Rounds: 26}}, "After 26 turns, Player 1 has won the game!"},
		{GameOverEvent{Result: Result{Winner: -1, TimedOut: true}}, "The game timed out!"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.event), "event: %s", tt.event.EventType())
	}
}

func TestNarratorLogsGame(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})

	sorted := cards.Standard()
	deck := append(append([]cards.Card{}, sorted[26:]...), sorted[:26]...)
	g, err := NewGame(Config{}, WithDeck(deck), WithSubscriber(NewNarrator(logger)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	g.PlayGame()

	out := buf.String()
	assert.Contains(t, out, "Each player has 26 cards in their decks.")
	assert.Contains(t, out, "Player 1 has won this turn without contest!")
	assert.Contains(t, out, "After 26 turns, Player 1 has won the game!")
	assert.NotContains(t, out, "played a", "card plays are debug level")
}

func TestDisplayRendersEvents(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.OnEvent(GameStartEvent{Players: 2, Decks: 1, CardsEach: 26})
	d.OnEvent(CardPlayedEvent{Round: 1, Player: 0, Card: cards.New(cards.Queen, cards.Hearts)})
	d.OnEvent(WarCardsEvent{Round: 1, War: 1, Player: 1, Cards: cards.MustParseCards("2S 3S 4S KS")})
	d.OnEvent(RoundWonEvent{Round: 1, Winner: 1, Cards: 10, Wars: 1})

	out := buf.String()
	assert.Contains(t, out, "WAR: 2 players, 1 deck(s)")
	assert.Contains(t, out, "Player 1 plays")
	assert.Contains(t, out, "QH")
	assert.Contains(t, out, "KS")
	assert.Equal(t, 3, strings.Count(out, "##"), "war cards before the last stay face down")
	assert.Contains(t, out, "Player 2 was the victor!")
}

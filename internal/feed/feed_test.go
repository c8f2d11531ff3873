package feed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/warsim/cards"
	"github.com/lox/warsim/internal/war"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestNewMessage(t *testing.T) {
	t.Run("card played", func(t *testing.T) {
		msg := NewMessage(war.CardPlayedEvent{Round: 3, Player: 1, Card: cards.New(cards.Queen, cards.Clubs)})
		assert.Equal(t, "card_played", msg.Type)
		assert.Equal(t, 3, msg.Round)
		assert.Equal(t, 2, msg.Player)
		assert.Equal(t, "QC", msg.Card)
		assert.Equal(t, "Player 2 played a Queen of Clubs.", msg.Text)
	})

	t.Run("war", func(t *testing.T) {
		msg := NewMessage(war.WarEvent{Round: 4, War: 2, Participants: []int{0, 3}})
		assert.Equal(t, []int{1, 4}, msg.Participants)
		assert.Equal(t, 2, msg.War)
	})

	t.Run("war cards", func(t *testing.T) {
		msg := NewMessage(war.WarCardsEvent{Player: 0, Cards: cards.MustParseCards("2S 3S 4S AS")})
		assert.Equal(t, []string{"2S", "3S", "4S", "AS"}, msg.Cards)
	})

	t.Run("timed out game", func(t *testing.T) {
		msg := NewMessage(war.GameOverEvent{Result: war.Result{Winner: -1, Rounds: 1000, TimedOut: true}})
		assert.Equal(t, 0, msg.Winner)
		assert.True(t, msg.TimedOut)
		assert.Equal(t, 1000, msg.Round)
	})
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub := NewHub(testLogger())
	server := httptest.NewServer(hub.Handler())
	defer server.Close()
	defer hub.Close()

	a := dial(t, server)
	b := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.OnEvent(war.GameStartEvent{Players: 2, Decks: 1, CardsEach: 26})
	hub.OnEvent(war.RoundWonEvent{Round: 1, Winner: 0, Cards: 2})

	for _, conn := range []*websocket.Conn{a, b} {
		start := readMessage(t, conn)
		assert.Equal(t, "game_start", start.Type)
		assert.Equal(t, 1, start.Game)
		assert.Equal(t, 26, start.Count)

		won := readMessage(t, conn)
		assert.Equal(t, "round_won", won.Type)
		assert.Equal(t, 1, won.Winner)
		assert.Equal(t, 2, won.Count)
		assert.Equal(t, 1, won.Game)
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	hub := NewHub(testLogger())
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Publishing with nobody listening is fine
	hub.OnEvent(war.PushEvent{Round: 1})
}

func TestHubHealth(t *testing.T) {
	server := httptest.NewServer(NewHub(testLogger()).Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestRunnerPlaysGames(t *testing.T) {
	rec := &war.Recorder{}
	runner := NewRunner(RunnerConfig{Games: 2, Seed: 1, Logger: testLogger()}, rec)

	require.NoError(t, runner.Run(context.Background()))

	assert.Len(t, rec.OfType(war.EventTypeGameStart), 2)
	assert.Len(t, rec.OfType(war.EventTypeGameOver), 2)
}

func TestRunnerArrangedDeck(t *testing.T) {
	sorted := cards.Standard()
	deck := append(append([]cards.Card{}, sorted[26:]...), sorted[:26]...)
	rec := &war.Recorder{}
	runner := NewRunner(RunnerConfig{Games: 1, Deck: deck, Logger: testLogger()}, rec)

	require.NoError(t, runner.Run(context.Background()))

	over := rec.OfType(war.EventTypeGameOver)
	require.Len(t, over, 1)
	assert.Equal(t, 0, over[0].(war.GameOverEvent).Result.Winner)
	assert.Equal(t, 26, over[0].(war.GameOverEvent).Result.Rounds)
}

// cancelOnRound cancels a context as soon as the first round is won
type cancelOnRound struct {
	cancel context.CancelFunc
}

func (c *cancelOnRound) OnEvent(event war.GameEvent) {
	if event.EventType() == war.EventTypeRoundWon {
		c.cancel()
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := NewRunner(RunnerConfig{RoundDelay: time.Hour, Logger: testLogger()}, &cancelOnRound{cancel: cancel})

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
}

func TestRunnerRejectsBadConfig(t *testing.T) {
	runner := NewRunner(RunnerConfig{Game: war.Config{Players: 5}, Games: 1}, &war.Recorder{})
	assert.ErrorIs(t, runner.Run(context.Background()), war.ErrUnevenDeal)
}

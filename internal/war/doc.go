// Package war implements the card game War for two or more players.
//
// A Game deals a shuffled deck (one or more standard decks merged) into
// equal slices. Each round every player turns over their top card and the
// unique highest rank takes every card on the table. When the highest rank
// is shared the tied players go to war: each puts down four more cards and
// the last of them decides, repeating among whoever is still tied.
//
// # Basic Usage
//
//	g, err := war.NewGame(war.Config{Players: 2, Decks: 1})
//	if err != nil {
//	    return err
//	}
//	result := g.PlayGame()
//
// # Deterministic Testing
//
// Every shuffle draws from the injected *rand.Rand:
//
//	rng := rand.New(rand.NewSource(42))
//	g, _ := war.NewGame(cfg, war.WithRNG(rng))
//
// A pre-arranged deck skips the construction shuffle entirely:
//
//	g, _ := war.NewGame(cfg, war.WithDeck(deck))
//
// # Events
//
// The engine publishes GameEvents to subscribers registered with
// WithSubscriber or Game.Subscribe. Narrator logs them, Display renders them
// with lipgloss, and Recorder keeps them for assertions.
package war

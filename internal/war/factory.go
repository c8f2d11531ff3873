package war

// Factory builds games from a set of default settings
type Factory struct {
	defaults Config
	opts     []Option
}

// NewFactory creates a factory. Options are applied to every game it builds.
func NewFactory(defaults Config, opts ...Option) *Factory {
	return &Factory{defaults: defaults.WithDefaults(), opts: opts}
}

// Defaults returns the factory's settings
func (f *Factory) Defaults() Config { return f.defaults }

// Create builds a game; non-zero fields in overrides replace the defaults.
// Extra options are applied after the factory's own.
func (f *Factory) Create(overrides Config, opts ...Option) (*Game, error) {
	cfg := f.defaults
	if overrides.Players != 0 {
		cfg.Players = overrides.Players
	}
	if overrides.Decks != 0 {
		cfg.Decks = overrides.Decks
	}
	if overrides.WarCards != 0 {
		cfg.WarCards = overrides.WarCards
	}
	if overrides.MaxRoundsPerDeck != 0 {
		cfg.MaxRoundsPerDeck = overrides.MaxRoundsPerDeck
	}
	if overrides.ShuffleTimes != 0 {
		cfg.ShuffleTimes = overrides.ShuffleTimes
	}
	if overrides.NoRecycleShuffle {
		cfg.NoRecycleShuffle = true
	}
	return NewGame(cfg, append(append([]Option(nil), f.opts...), opts...)...)
}

package war

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/warsim/cards"
)

// DisplayStyles contains styling for game narration
type DisplayStyles struct {
	Header    lipgloss.Style
	Round     lipgloss.Style
	Action    lipgloss.Style
	War       lipgloss.Style
	Winner    lipgloss.Style
	Muted     lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
}

// NewDisplayStyles creates the default set of display styles
func NewDisplayStyles() *DisplayStyles {
	return &DisplayStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Round: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		War: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C00")).
			Bold(true),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
	}
}

// Card renders a card code in its suit colour
func (s *DisplayStyles) Card(c cards.Card) string {
	if c.IsNone() {
		return s.Muted.Render(c.Short())
	}
	if c.Suit.Red() {
		return s.CardRed.Render(c.Short())
	}
	return s.CardBlack.Render(c.Short())
}

// Display writes styled narration for each event to an io.Writer
type Display struct {
	out    io.Writer
	styles *DisplayStyles
}

// NewDisplay creates a display writing to out
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out, styles: NewDisplayStyles()}
}

// Styles returns the styles used for rendering
func (d *Display) Styles() *DisplayStyles { return d.styles }

// OnEvent implements EventSubscriber
func (d *Display) OnEvent(event GameEvent) {
	if line := d.Render(event); line != "" {
		fmt.Fprintln(d.out, line)
	}
}

// Render returns the styled line for an event, or "" for silent events
func (d *Display) Render(event GameEvent) string {
	s := d.styles
	switch e := event.(type) {
	case GameStartEvent:
		return s.Header.Render(fmt.Sprintf("WAR: %d players, %d deck(s)", e.Players, e.Decks)) +
			"\n" + s.Muted.Render(Describe(e))
	case CardPlayedEvent:
		prefix := s.Round.Render(fmt.Sprintf("[%4d]", e.Round))
		if e.Card.IsNone() {
			return prefix + " " + s.Muted.Render(Describe(e))
		}
		return prefix + " " + s.Action.Render(fmt.Sprintf("Player %d plays", e.Player+1)) + " " + s.Card(e.Card)
	case WarEvent:
		return s.War.Render(Describe(e))
	case WarCardsEvent:
		if e.Forfeit {
			return "       " + s.Muted.Render(Describe(e))
		}
		codes := make([]string, len(e.Cards))
		for i, c := range e.Cards {
			if i == len(e.Cards)-1 {
				codes[i] = s.Card(c)
			} else {
				codes[i] = s.Muted.Render("##")
			}
		}
		return "       " + s.Action.Render(fmt.Sprintf("Player %d", e.Player+1)) + " " + strings.Join(codes, " ")
	case RoundWonEvent, PushEvent, EliminatedEvent:
		return "       " + s.Winner.Render(Describe(e))
	case RecycleEvent:
		return "       " + s.Muted.Render(Describe(e))
	case GameOverEvent:
		return s.Header.Render(Describe(e))
	}
	return ""
}

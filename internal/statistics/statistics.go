package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GameResult is the outcome of a single simulated game. Seed replays it;
// Winner is a zero-based seat, -1 when nobody won.
type GameResult struct {
	Seed       int64 `json:"seed"`
	Players    int   `json:"players"`
	Winner     int   `json:"winner"`
	Rounds     int   `json:"rounds"`
	Wars       int   `json:"wars"`
	LongestWar int   `json:"longest_war"`
	Pushes     int   `json:"pushes"`
	TimedOut   bool  `json:"timed_out"`
}

// Statistics aggregates simulated game results
type Statistics struct {
	Games  int
	SumR   float64   // sum of rounds
	SumR2  float64   // sum of squared rounds for variance
	Values []float64 // rounds per game for median/percentiles

	Timeouts   int
	Undecided  int   // games that ended with no winner and no timeout
	Wins       []int // wins per seat
	TotalWars  int
	LongestWar int
	Pushes     int

	LongestGame  int
	LongestSeed  int64
	ShortestGame int
}

// Mean returns the mean number of rounds per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumR / float64(s.Games)
}

// Variance returns the sample variance of rounds per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumR2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of rounds per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	rounds := float64(result.Rounds)
	s.Games++
	s.SumR += rounds
	s.SumR2 += rounds * rounds
	s.Values = append(s.Values, rounds)

	s.TotalWars += result.Wars
	s.Pushes += result.Pushes
	s.LongestWar = max(s.LongestWar, result.LongestWar)

	switch {
	case result.TimedOut:
		s.Timeouts++
	case result.Winner < 0:
		s.Undecided++
	default:
		for len(s.Wins) <= result.Winner {
			s.Wins = append(s.Wins, 0)
		}
		s.Wins[result.Winner]++
	}

	if result.Rounds > s.LongestGame {
		s.LongestGame = result.Rounds
		s.LongestSeed = result.Seed
	}
	if s.Games == 1 || result.Rounds < s.ShortestGame {
		s.ShortestGame = result.Rounds
	}
}

// Median returns the median number of rounds
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the rounds value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of all games won by seat
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.Wins) {
		return 0
	}
	return float64(s.Wins[seat]) / float64(s.Games)
}

// TimeoutRate returns the share of games that hit the round cap
func (s *Statistics) TimeoutRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Timeouts) / float64(s.Games)
}

// WarsPerGame returns the mean number of wars per game
func (s *Statistics) WarsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalWars) / float64(s.Games)
}

// Validate checks that the counts are consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	decided := 0
	for _, w := range s.Wins {
		decided += w
	}
	if decided+s.Timeouts+s.Undecided != s.Games {
		return fmt.Errorf("wins (%d) + timeouts (%d) + undecided (%d) does not match games (%d)",
			decided, s.Timeouts, s.Undecided, s.Games)
	}
	return nil
}

// Summary renders a short multi-line report
func (s *Statistics) Summary() string {
	var b strings.Builder
	low, high := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "Games:        %d\n", s.Games)
	fmt.Fprintf(&b, "Rounds:       mean %.1f (95%% CI %.1f-%.1f), median %.0f, p90 %.0f, min %d, max %d\n",
		s.Mean(), low, high, s.Median(), s.Percentile(0.9), s.ShortestGame, s.LongestGame)
	fmt.Fprintf(&b, "Wars:         %.2f per game, longest chain %d\n", s.WarsPerGame(), s.LongestWar)
	fmt.Fprintf(&b, "Timeouts:     %d (%.1f%%)\n", s.Timeouts, 100*s.TimeoutRate())
	if s.Pushes > 0 || s.Undecided > 0 {
		fmt.Fprintf(&b, "Pushes:       %d, undecided games %d\n", s.Pushes, s.Undecided)
	}
	for seat, wins := range s.Wins {
		fmt.Fprintf(&b, "Player %-2d     %d wins (%.1f%%)\n", seat+1, wins, 100*s.WinRate(seat))
	}
	return b.String()
}

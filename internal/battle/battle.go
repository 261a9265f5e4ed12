// Package battle holds the combatant roster and resolves battles between
// two meals. A Model is session-scoped state, never a process singleton.
package battle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/Amyat103/meal-max/internal/constants"
	"github.com/Amyat103/meal-max/internal/domain"
	"github.com/Amyat103/meal-max/internal/metrics"

	"github.com/rs/zerolog"
)

var (
	ErrRosterFull          = errors.New("combatant roster is full")
	ErrNotEnoughCombatants = errors.New("two combatants must be prepped to battle")
)

// StatsRecorder persists the outcome of a resolved battle. Both writes
// happen behind one call so the store can make them atomic.
type StatsRecorder interface {
	RecordBattle(ctx context.Context, winnerID, loserID int64) error
}

// Model is one caller's battle session: a roster of at most two meals
// and the roll used to resolve an upset.
type Model struct {
	mu         sync.Mutex
	combatants []domain.Meal
	recorder   StatsRecorder
	roll       func() float64
	logger     zerolog.Logger
}

type Option func(*Model)

// WithRoll replaces the uniform [0,1) draw used to resolve battles.
// Tests pin outcomes by supplying a fixed roll.
func WithRoll(roll func() float64) Option {
	return func(m *Model) {
		m.roll = roll
	}
}

func NewModel(recorder StatsRecorder, logger zerolog.Logger, opts ...Option) *Model {
	m := &Model{
		combatants: make([]domain.Meal, 0, constants.MaxCombatants),
		recorder:   recorder,
		roll:       rand.Float64,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PrepCombatant appends a meal to the roster.
func (m *Model) PrepCombatant(meal domain.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.combatants) >= constants.MaxCombatants {
		return fmt.Errorf("%w: %q not added", ErrRosterFull, meal.Name)
	}

	m.combatants = append(m.combatants, meal)
	m.logger.Info().
		Str("meal", meal.Name).
		Int("roster_size", len(m.combatants)).
		Msg("combatant prepped")
	return nil
}

// ClearCombatants empties the roster unconditionally.
func (m *Model) ClearCombatants() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.combatants = m.combatants[:0]
	m.logger.Info().Msg("combatants cleared")
}

// Combatants returns a copy of the current roster.
func (m *Model) Combatants() []domain.Meal {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Meal, len(m.combatants))
	copy(out, m.combatants)
	return out
}

// Score is the deterministic comparison heuristic:
// price * len(cuisine) - difficulty modifier.
func (m *Model) Score(meal domain.Meal) float64 {
	return meal.Price.InexactFloat64()*float64(len(meal.Cuisine)) - meal.Difficulty.BattleModifier()
}

// Battle resolves the two prepped combatants. The higher score is
// favored: the lower scorer wins only when the roll lands below
// 0.5 - clamp(|scoreA-scoreB|/100, 0, 1). Stats are persisted through
// the recorder and the roster keeps only the winner.
func (m *Model) Battle(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.combatants) < constants.MaxCombatants {
		return "", fmt.Errorf("%w: roster has %d", ErrNotEnoughCombatants, len(m.combatants))
	}

	high, low := m.combatants[0], m.combatants[1]
	scoreHigh, scoreLow := m.Score(high), m.Score(low)
	if scoreLow > scoreHigh {
		high, low = low, high
		scoreHigh, scoreLow = scoreLow, scoreHigh
	}

	delta := math.Abs(scoreHigh-scoreLow) / constants.DeltaDivisor
	if delta > 1 {
		delta = 1
	}
	threshold := 0.5 - delta

	r := m.roll()
	winner, loser := high, low
	result := "favored"
	if r < threshold {
		winner, loser = low, high
		result = "upset"
	}
	metrics.BattlesTotal.WithLabelValues(result).Inc()
	metrics.ScoreDelta.Observe(delta)

	m.logger.Info().
		Str("high", high.Name).
		Str("low", low.Name).
		Float64("score_high", scoreHigh).
		Float64("score_low", scoreLow).
		Float64("delta", delta).
		Float64("roll", r).
		Str("winner", winner.Name).
		Msg("battle resolved")

	if err := m.recorder.RecordBattle(ctx, winner.ID, loser.ID); err != nil {
		return "", fmt.Errorf("failed to record battle outcome: %w", err)
	}

	m.combatants = m.combatants[:0]
	m.combatants = append(m.combatants, winner)

	return winner.Name, nil
}

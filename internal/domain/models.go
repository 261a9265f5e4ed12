package domain

import (
	"github.com/shopspring/decimal"
)

// Difficulty is the preparation difficulty of a meal.
type Difficulty string

const (
	DifficultyLow  Difficulty = "LOW"
	DifficultyMed  Difficulty = "MED"
	DifficultyHigh Difficulty = "HIGH"
)

// Valid reports whether d is one of the three known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

// BattleModifier is the score penalty applied for this difficulty.
// Harder meals are penalized less.
func (d Difficulty) BattleModifier() float64 {
	switch d {
	case DifficultyHigh:
		return 1
	case DifficultyMed:
		return 2
	default:
		return 3
	}
}

type Meal struct {
	ID         int64
	Name       string
	Cuisine    string
	Price      decimal.Decimal
	Difficulty Difficulty
	Battles    int
	Wins       int
	Deleted    bool
}

// LeaderboardEntry is a meal annotated with its win percentage.
// WinPct is wins/battles*100; entries only exist for battles > 0.
type LeaderboardEntry struct {
	ID         int64
	Name       string
	Cuisine    string
	Price      decimal.Decimal
	Difficulty Difficulty
	Battles    int
	Wins       int
	WinPct     float64
}

// SortField selects the leaderboard ordering. The zero value leaves
// rows in insertion order.
type SortField string

const (
	SortNone   SortField = ""
	SortWins   SortField = "wins"
	SortWinPct SortField = "win_pct"
)

func (s SortField) Valid() bool {
	switch s {
	case SortNone, SortWins, SortWinPct:
		return true
	}
	return false
}

// Outcome is one side's result of a battle.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

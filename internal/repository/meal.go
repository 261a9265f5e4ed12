package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Amyat103/meal-max/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type MealRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMealRepository(sqlDB *sql.DB, logger zerolog.Logger) *MealRepository {
	return &MealRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Create inserts a new meal row. The (meal, cuisine, price) triple is
// unique; a collision maps to domain.ErrDuplicateMeal.
func (r *MealRepository) Create(ctx context.Context, name, cuisine string, price decimal.Decimal, difficulty domain.Difficulty) (domain.Meal, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meals (meal, cuisine, price, difficulty) VALUES (?, ?, ?, ?)`,
		name, cuisine, price.InexactFloat64(), string(difficulty),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			r.logger.Warn().
				Str("meal", name).
				Str("cuisine", cuisine).
				Str("price", price.String()).
				Msg("duplicate meal")
			return domain.Meal{}, fmt.Errorf("%w: %s (%s, %s)", domain.ErrDuplicateMeal, name, cuisine, price.String())
		}
		return domain.Meal{}, fmt.Errorf("failed to insert meal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Meal{}, fmt.Errorf("failed to read inserted meal id: %w", err)
	}

	r.logger.Info().
		Int64("id", id).
		Str("meal", name).
		Str("cuisine", cuisine).
		Msg("meal created")

	return domain.Meal{
		ID:         id,
		Name:       name,
		Cuisine:    cuisine,
		Price:      price,
		Difficulty: difficulty,
	}, nil
}

// SoftDelete flips the deleted flag. Rows are never physically removed.
func (r *MealRepository) SoftDelete(ctx context.Context, id int64) error {
	deleted, err := r.lookupDeleted(ctx, r.db, id)
	if err != nil {
		return err
	}
	if deleted {
		return fmt.Errorf("%w: id %d", domain.ErrMealDeleted, id)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE meals SET deleted = TRUE WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to soft delete meal %d: %w", id, err)
	}

	r.logger.Info().Int64("id", id).Msg("meal soft deleted")
	return nil
}

// GetByID returns the meal with the given id. Soft-deleted rows are
// reported as deleted rather than returned.
func (r *MealRepository) GetByID(ctx context.Context, id int64) (domain.Meal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, meal, cuisine, price, difficulty, deleted, battles, wins FROM meals WHERE id = ?`, id)
	meal, err := scanMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Meal{}, fmt.Errorf("%w: id %d", domain.ErrMealNotFound, id)
	}
	if err != nil {
		return domain.Meal{}, fmt.Errorf("failed to get meal %d: %w", id, err)
	}
	if meal.Deleted {
		return domain.Meal{}, fmt.Errorf("%w: id %d", domain.ErrMealDeleted, id)
	}
	return meal, nil
}

// GetByName returns the meal with the given name, with the same
// soft-delete policy as GetByID.
func (r *MealRepository) GetByName(ctx context.Context, name string) (domain.Meal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, meal, cuisine, price, difficulty, deleted, battles, wins FROM meals WHERE meal = ?`, name)
	meal, err := scanMeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Meal{}, fmt.Errorf("%w: name %q", domain.ErrMealNotFound, name)
	}
	if err != nil {
		return domain.Meal{}, fmt.Errorf("failed to get meal %q: %w", name, err)
	}
	if meal.Deleted {
		return domain.Meal{}, fmt.Errorf("%w: name %q", domain.ErrMealDeleted, name)
	}
	return meal, nil
}

// Leaderboard lists non-deleted meals that have fought at least one
// battle, annotated with win percentage. Ties break on insertion order.
func (r *MealRepository) Leaderboard(ctx context.Context, sortBy domain.SortField) ([]domain.LeaderboardEntry, error) {
	if !sortBy.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSortField, string(sortBy))
	}

	query := `SELECT id, meal, cuisine, price, difficulty, battles, wins,
        CAST(wins AS REAL) / battles * 100 AS win_pct
        FROM meals WHERE deleted = FALSE AND battles > 0`
	switch sortBy {
	case domain.SortWins:
		query += ` ORDER BY wins DESC, id ASC`
	case domain.SortWinPct:
		query += ` ORDER BY win_pct DESC, id ASC`
	default:
		query += ` ORDER BY id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var (
			e          domain.LeaderboardEntry
			price      float64
			difficulty string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Cuisine, &price, &difficulty, &e.Battles, &e.Wins, &e.WinPct); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.Price = decimal.NewFromFloat(price)
		e.Difficulty = domain.Difficulty(difficulty)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard rows: %w", err)
	}

	if len(entries) == 0 {
		r.logger.Warn().Msg("leaderboard is empty")
	}
	return entries, nil
}

// RecordOutcome increments battles, and wins when the outcome is a win,
// as one guarded update. Deleted rows are never mutated.
func (r *MealRepository) RecordOutcome(ctx context.Context, id int64, outcome domain.Outcome) error {
	if !outcome.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOutcome, string(outcome))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.recordOutcomeTx(ctx, tx, id, outcome); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordBattle persists a win for one meal and a loss for another in a
// single transaction so a crash cannot leave half a battle recorded.
func (r *MealRepository) RecordBattle(ctx context.Context, winnerID, loserID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.recordOutcomeTx(ctx, tx, winnerID, domain.OutcomeWin); err != nil {
		return err
	}
	if err := r.recordOutcomeTx(ctx, tx, loserID, domain.OutcomeLoss); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit battle outcome: %w", err)
	}

	r.logger.Info().
		Int64("winner_id", winnerID).
		Int64("loser_id", loserID).
		Msg("battle outcome recorded")
	return nil
}

func (r *MealRepository) recordOutcomeTx(ctx context.Context, tx *sql.Tx, id int64, outcome domain.Outcome) error {
	deleted, err := r.lookupDeleted(ctx, tx, id)
	if err != nil {
		return err
	}
	if deleted {
		return fmt.Errorf("%w: id %d", domain.ErrMealDeleted, id)
	}

	winInc := 0
	if outcome == domain.OutcomeWin {
		winInc = 1
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE meals SET battles = battles + 1, wins = wins + ? WHERE id = ? AND deleted = FALSE`,
		winInc, id,
	); err != nil {
		return fmt.Errorf("failed to update stats for meal %d: %w", id, err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *MealRepository) lookupDeleted(ctx context.Context, q querier, id int64) (bool, error) {
	var deleted bool
	err := q.QueryRowContext(ctx, `SELECT deleted FROM meals WHERE id = ?`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: id %d", domain.ErrMealNotFound, id)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up meal %d: %w", id, err)
	}
	return deleted, nil
}

// Reset drops and recreates the meals table. Destructive; intended for
// maintenance and tests only. The DDL mirrors the goose migration.
func (r *MealRepository) Reset(ctx context.Context) error {
	const schema = `
        DROP TABLE IF EXISTS meals;
        CREATE TABLE meals (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            meal TEXT NOT NULL,
            cuisine TEXT NOT NULL,
            price REAL NOT NULL CHECK (price > 0),
            difficulty TEXT NOT NULL CHECK (difficulty IN ('LOW', 'MED', 'HIGH')),
            deleted BOOLEAN NOT NULL DEFAULT FALSE,
            battles INTEGER NOT NULL DEFAULT 0,
            wins INTEGER NOT NULL DEFAULT 0,
            UNIQUE (meal, cuisine, price)
        );
        CREATE INDEX idx_meals_name ON meals (meal);`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to reset meals table: %w", err)
	}
	r.logger.Warn().Msg("meals table reset")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (domain.Meal, error) {
	var (
		m          domain.Meal
		price      float64
		difficulty string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Cuisine, &price, &difficulty, &m.Deleted, &m.Battles, &m.Wins); err != nil {
		return domain.Meal{}, err
	}
	m.Price = decimal.NewFromFloat(price)
	m.Difficulty = domain.Difficulty(difficulty)
	return m, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/Amyat103/meal-max/internal/battle"
	"github.com/Amyat103/meal-max/internal/constants"
	"github.com/Amyat103/meal-max/internal/domain"
	"github.com/Amyat103/meal-max/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BattleService drives per-session battle models against the catalog.
type BattleService struct {
	manager *battle.Manager
	repo    *repository.MealRepository
	logger  zerolog.Logger
}

func NewBattleService(manager *battle.Manager, repo *repository.MealRepository, logger zerolog.Logger) *BattleService {
	return &BattleService{manager: manager, repo: repo, logger: logger}
}

// Session resolves the session id, creating a fresh session when id is
// empty, and returns the id actually in use.
func (s *BattleService) Session(id string) (string, *battle.Model, error) {
	return s.manager.Session(id)
}

// PrepCombatant fetches the meal and adds it to the session roster.
func (s *BattleService) PrepCombatant(ctx context.Context, sessionID string, mealID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, model, err := s.manager.Session(sessionID)
	if err != nil {
		return "", err
	}

	meal, err := s.repo.GetByID(ctx, mealID)
	if err != nil {
		return "", err
	}

	if err := model.PrepCombatant(meal); err != nil {
		return "", err
	}
	return id, nil
}

// PrepPair fetches both meals concurrently and preps them in order.
func (s *BattleService) PrepPair(ctx context.Context, sessionID string, firstID, secondID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, model, err := s.manager.Session(sessionID)
	if err != nil {
		return "", err
	}

	g, gCtx := errgroup.WithContext(ctx)
	var first, second domain.Meal

	g.Go(func() error {
		var err error
		first, err = s.repo.GetByID(gCtx, firstID)
		return err
	})
	g.Go(func() error {
		var err error
		second, err = s.repo.GetByID(gCtx, secondID)
		return err
	})

	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to fetch combatants: %w", err)
	}

	if err := model.PrepCombatant(first); err != nil {
		return "", err
	}
	if err := model.PrepCombatant(second); err != nil {
		return "", err
	}
	return id, nil
}

func (s *BattleService) Combatants(sessionID string) (string, []domain.Meal, error) {
	id, model, err := s.manager.Session(sessionID)
	if err != nil {
		return "", nil, err
	}
	return id, model.Combatants(), nil
}

func (s *BattleService) ClearCombatants(sessionID string) (string, error) {
	id, model, err := s.manager.Session(sessionID)
	if err != nil {
		return "", err
	}
	model.ClearCombatants()
	return id, nil
}

// Battle resolves the session's two combatants and returns the winning
// meal's name.
func (s *BattleService) Battle(ctx context.Context, sessionID string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	id, model, err := s.manager.Session(sessionID)
	if err != nil {
		return "", "", err
	}

	winner, err := model.Battle(ctx)
	if err != nil {
		return "", "", err
	}

	s.logger.Info().
		Str("battle_session", id).
		Str("winner", winner).
		Msg("battle fought")
	return id, winner, nil
}

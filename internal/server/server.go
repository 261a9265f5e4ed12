// Package server exposes the meal catalog and battle engine over a
// JSON/HTTP surface. Battle sessions are selected with the
// X-Battle-Session header; requests without one get a fresh session and
// the id is echoed back.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Amyat103/meal-max/internal/battle"
	"github.com/Amyat103/meal-max/internal/domain"
	"github.com/Amyat103/meal-max/internal/metrics"
	"github.com/Amyat103/meal-max/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const sessionHeader = "X-Battle-Session"

type Server struct {
	mealSvc   *service.MealService
	battleSvc *service.BattleService
	logger    zerolog.Logger
}

func New(mealSvc *service.MealService, battleSvc *service.BattleService, logger zerolog.Logger) *Server {
	return &Server{mealSvc: mealSvc, battleSvc: battleSvc, logger: logger}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/meals", s.handleCreateMeal)
		r.Delete("/meals", s.handleResetMeals)
		r.Get("/meals/{id}", s.handleGetMealByID)
		r.Delete("/meals/{id}", s.handleDeleteMeal)
		r.Get("/meals/by-name/{name}", s.handleGetMealByName)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Post("/battle", s.handleBattle)
		r.Post("/battle/combatants", s.handlePrepCombatant)
		r.Post("/battle/pair", s.handlePrepPair)
		r.Get("/battle/combatants", s.handleGetCombatants)
		r.Delete("/battle/combatants", s.handleClearCombatants)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMealNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateMeal),
		errors.Is(err, domain.ErrMealDeleted),
		errors.Is(err, battle.ErrRosterFull),
		errors.Is(err, battle.ErrNotEnoughCombatants):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidCuisine),
		errors.Is(err, domain.ErrInvalidSortField),
		errors.Is(err, domain.ErrInvalidOutcome):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

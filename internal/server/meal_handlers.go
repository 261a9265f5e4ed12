package server

import (
	"net/http"
	"strconv"

	"github.com/Amyat103/meal-max/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createMealRequest struct {
	Meal       string          `json:"meal"`
	Cuisine    string          `json:"cuisine"`
	Price      decimal.Decimal `json:"price"`
	Difficulty string          `json:"difficulty"`
}

type mealResponse struct {
	ID         int64           `json:"id"`
	Meal       string          `json:"meal"`
	Cuisine    string          `json:"cuisine"`
	Price      decimal.Decimal `json:"price"`
	Difficulty string          `json:"difficulty"`
	Battles    int             `json:"battles"`
	Wins       int             `json:"wins"`
}

func toMealResponse(m domain.Meal) mealResponse {
	return mealResponse{
		ID:         m.ID,
		Meal:       m.Name,
		Cuisine:    m.Cuisine,
		Price:      m.Price,
		Difficulty: string(m.Difficulty),
		Battles:    m.Battles,
		Wins:       m.Wins,
	}
}

type leaderboardEntryResponse struct {
	mealResponse
	WinPct float64 `json:"win_pct"`
}

func (s *Server) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var req createMealRequest
	if !s.decode(w, r, &req) {
		return
	}

	meal, err := s.mealSvc.CreateMeal(r.Context(), req.Meal, req.Cuisine, req.Price, domain.Difficulty(req.Difficulty))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toMealResponse(meal))
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := s.mealID(w, r)
	if !ok {
		return
	}

	if err := s.mealSvc.DeleteMeal(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleGetMealByID(w http.ResponseWriter, r *http.Request) {
	id, ok := s.mealID(w, r)
	if !ok {
		return
	}

	meal, err := s.mealSvc.GetMealByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toMealResponse(meal))
}

func (s *Server) handleGetMealByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		s.writeError(w, domain.ErrInvalidName)
		return
	}

	meal, err := s.mealSvc.GetMealByName(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toMealResponse(meal))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	sortBy := domain.SortField(r.URL.Query().Get("sort"))

	entries, err := s.mealSvc.Leaderboard(r.Context(), sortBy)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]leaderboardEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = leaderboardEntryResponse{
			mealResponse: mealResponse{
				ID:         e.ID,
				Meal:       e.Name,
				Cuisine:    e.Cuisine,
				Price:      e.Price,
				Difficulty: string(e.Difficulty),
				Battles:    e.Battles,
				Wins:       e.Wins,
			},
			WinPct: e.WinPct,
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"leaderboard": resp})
}

func (s *Server) handleResetMeals(w http.ResponseWriter, r *http.Request) {
	if err := s.mealSvc.ResetMeals(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) mealID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warn().Str("id", raw).Msg("invalid meal id")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "meal id must be an integer"})
		return 0, false
	}
	return id, true
}

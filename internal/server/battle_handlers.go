package server

import (
	"encoding/json"
	"net/http"
)

type prepCombatantRequest struct {
	MealID int64 `json:"meal_id"`
}

type prepPairRequest struct {
	FirstMealID  int64 `json:"first_meal_id"`
	SecondMealID int64 `json:"second_meal_id"`
}

func (s *Server) handlePrepCombatant(w http.ResponseWriter, r *http.Request) {
	var req prepCombatantRequest
	if !s.decode(w, r, &req) {
		return
	}

	session, err := s.battleSvc.PrepCombatant(r.Context(), r.Header.Get(sessionHeader), req.MealID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set(sessionHeader, session)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "combatant prepped", "session": session})
}

func (s *Server) handlePrepPair(w http.ResponseWriter, r *http.Request) {
	var req prepPairRequest
	if !s.decode(w, r, &req) {
		return
	}

	session, err := s.battleSvc.PrepPair(r.Context(), r.Header.Get(sessionHeader), req.FirstMealID, req.SecondMealID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set(sessionHeader, session)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "combatants prepped", "session": session})
}

func (s *Server) handleGetCombatants(w http.ResponseWriter, r *http.Request) {
	session, combatants, err := s.battleSvc.Combatants(r.Header.Get(sessionHeader))
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := make([]mealResponse, len(combatants))
	for i, c := range combatants {
		resp[i] = toMealResponse(c)
	}

	w.Header().Set(sessionHeader, session)
	s.writeJSON(w, http.StatusOK, map[string]any{"combatants": resp, "session": session})
}

func (s *Server) handleClearCombatants(w http.ResponseWriter, r *http.Request) {
	session, err := s.battleSvc.ClearCombatants(r.Header.Get(sessionHeader))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set(sessionHeader, session)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "combatants cleared", "session": session})
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	session, winner, err := s.battleSvc.Battle(r.Context(), r.Header.Get(sessionHeader))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set(sessionHeader, session)
	s.writeJSON(w, http.StatusOK, map[string]string{"winner": winner, "session": session})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Warn().Err(err).Msg("invalid request body")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

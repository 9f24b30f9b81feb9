package server

import (
	"log"
	"net/http"
	"time"

	"buzzer/internal/arbiter"
	"buzzer/internal/store"
)

type buzzRequest struct {
	Name string `json:"name"`
}

type resetRequest struct {
	Pin string `json:"pin"`
}

func (s *Server) handleBuzz(w http.ResponseWriter, r *http.Request) {
	var req buzzRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.arbiter.Buzz(r.Context(), name)
	if err != nil {
		log.Printf("buzz failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	if result.Outcome == arbiter.OutcomeInvalidName {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if result.Outcome == arbiter.OutcomeWinner {
		log.Printf("buzz won round_id=%d participant=%s", result.RoundID, name)
	}
	writeJSON(w, http.StatusOK, buzzResponse(result))
}

func buzzResponse(result arbiter.BuzzResult) map[string]any {
	resp := map[string]any{
		"outcome":  string(result.Outcome),
		"round_id": result.RoundID,
	}
	if result.Sequence > 0 {
		resp["sequence"] = result.Sequence
	}
	if result.WinnerName != "" {
		resp["winner_name"] = result.WinnerName
	}
	return resp
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.arbiter.Status(r.Context())
	if err != nil {
		log.Printf("status failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse(status))
}

func statusResponse(status arbiter.RoundStatus) map[string]any {
	buzzes := make([]map[string]any, 0, len(status.Buzzes))
	for _, buzz := range status.Buzzes {
		buzzes = append(buzzes, buzzEventJSON(buzz))
	}
	resp := map[string]any{
		"round_id": status.RoundID,
		"status":   status.Status,
		"buzzes":   buzzes,
	}
	if status.Winner != nil {
		resp["winner"] = buzzEventJSON(*status.Winner)
	}
	return resp
}

func buzzEventJSON(buzz store.BuzzEvent) map[string]any {
	return map[string]any{
		"participant": buzz.ParticipantName,
		"sequence":    buzz.SequenceNumber,
		"buzzed_at":   buzz.BuzzedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.arbiter.Reset(r.Context(), req.Pin)
	if err != nil {
		log.Printf("reset failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	if !result.Authorized {
		writeError(w, http.StatusUnauthorized, "invalid pin")
		return
	}
	log.Printf("round reset round_id=%d", result.RoundID)
	writeJSON(w, http.StatusOK, map[string]any{
		"round_id": result.RoundID,
	})
}

// Package rest exposes the glossary matcher over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
	"github.com/heartmarshall/citizenship-glossary/internal/service/matcher"
)

type matchService interface {
	Match(ctx context.Context, text, lang string) (matcher.Result, error)
	Entries() []domain.Entry
}

// MatchHandler serves the matcher endpoints.
type MatchHandler struct {
	log          *slog.Logger
	svc          matchService
	maxBodyBytes int64
}

// NewMatchHandler creates a MatchHandler. maxBodyBytes <= 0 disables the
// request body limit.
func NewMatchHandler(log *slog.Logger, svc matchService, maxBodyBytes int64) *MatchHandler {
	return &MatchHandler{
		log:          log.With("handler", "match"),
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
	}
}

// MatchRequest is the body of POST /api/v1/match.
type MatchRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// MatchResponse is the body returned by POST /api/v1/match.
type MatchResponse struct {
	Source  domain.MatchSource `json:"source"`
	Matches []domain.Match     `json:"matches"`
}

// GlossaryResponse is the body returned by GET /api/v1/glossary.
type GlossaryResponse struct {
	Count   int            `json:"count"`
	Entries []domain.Entry `json:"entries"`
}

// Match finds glossary terms in the submitted text.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := h.svc.Match(r.Context(), req.Text, req.Language)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	matches := res.Matches
	if matches == nil {
		matches = []domain.Match{}
	}
	writeJSON(w, http.StatusOK, MatchResponse{Source: res.Source, Matches: matches})
}

// Glossary lists the entries of the loaded glossary snapshot.
func (h *MatchHandler) Glossary(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Entries()
	writeJSON(w, http.StatusOK, GlossaryResponse{Count: len(entries), Entries: entries})
}

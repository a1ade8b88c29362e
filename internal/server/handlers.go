package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"github.com/shahar-caura/deskhand/internal/assistant"
	"github.com/shahar-caura/deskhand/internal/command"
	"github.com/shahar-caura/deskhand/internal/history"
)

// Assistant is the part of assistant.Assistant the API needs.
type Assistant interface {
	Handle(ctx context.Context, utterance string) assistant.Outcome
}

const defaultHistoryLimit = 20

// Handlers serves the JSON endpoints described in openapi.yaml.
type Handlers struct {
	Assistant Assistant
	Version   string
	StartTime time.Time
	Logger    *slog.Logger
}

type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int    `json:"uptime_seconds"`
}

type utteranceRequest struct {
	Utterance string `json:"utterance"`
}

type commandResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category,omitempty"`
	Parameter string `json:"parameter"`
	Min       *int   `json:"min,omitempty"`
	Max       *int   `json:"max,omitempty"`
	Step      *int   `json:"step,omitempty"`
}

type historyList struct {
	Entries []*history.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// Register adds the JSON endpoints to mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.GetHealth)
	mux.HandleFunc("POST /api/utterances", h.HandleUtterance)
	mux.HandleFunc("GET /api/commands", h.ListCommands)
	mux.HandleFunc("GET /api/history", h.ListHistory)
	mux.HandleFunc("GET /api/history/{id}", h.GetHistoryEntry)
}

func (h *Handlers) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.Version,
		UptimeSeconds: int(time.Since(h.StartTime).Seconds()),
	})
}

func (h *Handlers) HandleUtterance(w http.ResponseWriter, r *http.Request) {
	var req utteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out := h.Assistant.Handle(r.Context(), req.Utterance)
	if !out.OK() {
		h.Logger.Debug("utterance failed", "error", out.Err)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) ListCommands(w http.ResponseWriter, _ *http.Request) {
	specs := command.All()
	resp := make([]commandResponse, 0, len(specs))
	for _, s := range specs {
		c := commandResponse{
			ID:        string(s.ID),
			Category:  string(s.Category),
			Parameter: s.Param.String(),
		}
		if s.Param == command.ParamPercent {
			c.Min, c.Max = &s.Min, &s.Max
		}
		if s.Step != 0 {
			c.Step = &s.Step
		}
		resp = append(resp, c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var status string
	if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &status); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := history.List()
	if err != nil {
		h.Logger.Error("listing history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	matched := history.Select(entries, status, 0)
	page := matched
	if len(page) > limit {
		page = page[:limit]
	}
	if page == nil {
		page = []*history.Entry{}
	}

	writeJSON(w, http.StatusOK, historyList{Entries: page, Total: len(matched)})
}

func (h *Handlers) GetHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" || strings.ContainsAny(id, `/\.`) {
		writeError(w, http.StatusBadRequest, "invalid history id")
		return
	}

	e, err := history.Load(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "history entry not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

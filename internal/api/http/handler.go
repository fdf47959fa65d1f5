// Package httpapi provides the REST handlers for the planning service.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"advisor/internal/agents"
	"advisor/internal/domain/profile"
	"advisor/internal/domain/session"
	"advisor/internal/export"
	"advisor/internal/metrics"
	"advisor/internal/visualizations"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

// Handler bundles the dependencies shared by all REST endpoints.
type Handler struct {
	orchestrator *agents.Orchestrator
	sessions     session.Repository
	log          *logger.Logger
}

// NewHandler creates a Handler around the orchestrator and session store.
func NewHandler(orchestrator *agents.Orchestrator, sessions session.Repository) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		sessions:     sessions,
		log:          logger.Get().With("component", "http"),
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

type startRequest struct {
	SelectedPlans []string             `json:"selected_plans"`
	UserInfo      *profile.UserProfile `json:"user_info"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// ListPlans returns the catalog of planning domains.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, agents.Descriptors())
}

// StartPlanning validates the profile and selected plans, runs the domain
// agents, and returns the generated summaries plus chart specifications.
func (h *Handler) StartPlanning(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.SelectedPlans) == 0 {
		Error(w, http.StatusBadRequest, "No plans selected")
		return
	}
	if req.UserInfo == nil {
		Error(w, http.StatusBadRequest, "User information required")
		return
	}
	if err := req.UserInfo.Validate(); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	domains := make([]agents.Domain, 0, len(req.SelectedPlans))
	for _, name := range req.SelectedPlans {
		d, ok := agents.ParseDomain(name)
		if !ok {
			Error(w, http.StatusBadRequest, "Unknown plan: "+name)
			return
		}
		domains = append(domains, d)
	}

	sess, err := h.orchestrator.StartSession(r.Context(), *req.UserInfo, domains)
	if err != nil {
		h.log.Errorw("Planning session failed", "error", err)
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":     sess.ID,
		"plan_summaries": sess.PlanSummaries,
		"visualizations": visualizations.Build(sess.Profile, sess.SelectedPlans),
		"status":         "success",
	})
}

// GetPlanning returns the stored results for a session. Chart
// specifications are deterministic in the profile, so they are rebuilt
// rather than stored.
func (h *Handler) GetPlanning(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"user_info":      sess.Profile,
		"selected_plans": sess.SelectedPlans,
		"plan_summaries": sess.PlanSummaries,
		"visualizations": visualizations.Build(sess.Profile, sess.SelectedPlans),
	})
}

// Chat answers a follow-up question against an existing session.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "Message required")
		return
	}

	reply, err := h.orchestrator.Chat(r.Context(), chi.URLParam(r, "sessionID"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrSessionNotFound):
			Error(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, errors.ErrInvalidInput):
			Error(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Errorw("Chat completion failed", "session_id", chi.URLParam(r, "sessionID"), "error", err)
			Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": reply,
		"status":  "success",
	})
}

// ExportJSON returns the session's plan summaries as a JSON document.
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	raw, err := export.RenderJSON(sess)
	metrics.RecordExport("json", err)
	if err != nil {
		h.log.Errorw("JSON export failed", "session_id", sess.ID, "error", err)
		Error(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// ExportPDF returns the session's plan summaries as a PDF attachment.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	raw, err := export.RenderPDF(sess)
	metrics.RecordExport("pdf", err)
	if err != nil {
		h.log.Errorw("PDF export failed", "session_id", sess.ID, "error", err)
		Error(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", exportFilename("pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// ExportDOCX returns the session's plan summaries as a Word attachment.
func (h *Handler) ExportDOCX(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	raw, err := export.RenderDOCX(sess)
	metrics.RecordExport("docx", err)
	if err != nil {
		h.log.Errorw("DOCX export failed", "session_id", sess.ID, "error", err)
		Error(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", exportFilename("docx"))
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// loadSession resolves the sessionID route parameter, writing a 404 when
// the session does not exist.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			Error(w, http.StatusNotFound, "Session not found")
		} else {
			h.log.Errorw("Session lookup failed", "session_id", id, "error", err)
			Error(w, http.StatusInternalServerError, "Session lookup failed")
		}
		return nil, false
	}
	return sess, true
}

func exportFilename(ext string) string {
	return "attachment; filename=financial_plan_" + time.Now().Format("20060102") + "." + ext
}

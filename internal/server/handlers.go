package server

import (
	"encoding/json"
	"net/http"

	"github.com/akarpov/feedlens/internal/model"
	"github.com/akarpov/feedlens/internal/render"
	"github.com/akarpov/feedlens/internal/validate"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "feedlens — X algorithm simulator API"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req model.InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := validate.Normalize(req.Username)
	if err := validate.Username(username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	insights := s.pipeline.QuickInsights(r.Context(), username)
	writeJSON(w, http.StatusOK, model.InsightsResponse{Insights: insights})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	username := validate.Normalize(req.Username)
	if err := validate.Username(username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.pipeline.Analyze(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReportPage renders the full analysis as a styled HTML page
func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	username := validate.Normalize(r.URL.Query().Get("username"))
	if err := validate.Username(username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.pipeline.Analyze(r.Context(), username)
	if err != nil {
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, render.Assemble(username, resp)); err != nil {
		http.Error(w, "Render failed", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Detail: detail})
}

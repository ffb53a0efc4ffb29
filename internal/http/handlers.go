package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"gullak/internal/llm"
	"gullak/internal/news"
	"gullak/internal/ppp"
)

const (
	msgAIUnavailable   = "⚠️ The AI assistant is unavailable right now. Please try again later."
	msgNewsUnavailable = "news feed unavailable"
	msgGoldUnavailable = "gold price source unavailable"
)

type commandRequest struct {
	UserID  string `json:"user_id"`
	Command string `json:"command"`
}

type qaRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

type simplifyRequest struct {
	NewsText string `json:"news_text"`
	Language string `json:"language"`
}

type textResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Command) == "" {
		writeError(w, http.StatusBadRequest, "user_id and command are required")
		return
	}

	resp, err := s.commands.Execute(r.Context(), req.UserID, req.Command)
	if err != nil {
		slog.ErrorContext(r.Context(), "Command execution failed",
			"error", err,
			"user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "command execution failed")
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Response: resp})
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	var req qaRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	lang := llm.NormalizeLanguage(req.Language)
	s.answerWithLLM(w, r, llm.FinanceQAPrompt(req.Query, lang))
}

func (s *Server) handleNewsSimplify(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if !readJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.NewsText) == "" {
		writeError(w, http.StatusBadRequest, "news_text is required")
		return
	}

	lang := llm.NormalizeLanguage(req.Language)
	s.answerWithLLM(w, r, llm.NewsSimplifierPrompt(req.NewsText, lang))
}

// answerWithLLM runs the prompt and degrades to a warning string when the
// model is missing or failing. Chat-style endpoints never surface 5xx for
// collaborator trouble.
func (s *Server) answerWithLLM(w http.ResponseWriter, r *http.Request, prompt string) {
	if s.llm == nil {
		writeJSON(w, http.StatusOK, textResponse{Response: msgAIUnavailable})
		return
	}
	answer, err := s.llm.Call(r.Context(), prompt)
	if err != nil {
		slog.ErrorContext(r.Context(), "LLM call failed", "error", err)
		writeJSON(w, http.StatusOK, textResponse{Response: msgAIUnavailable})
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Response: answer})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := s.newsLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := s.news.Fetch(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "News fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, msgNewsUnavailable)
		return
	}
	if items == nil {
		items = []news.Item{}
	}
	writeJSON(w, http.StatusOK, map[string][]news.Item{"items": items})
}

func (s *Server) handleGold(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "city is required")
		return
	}

	prices, err := s.gold.Fetch(r.Context(), city)
	if err != nil {
		slog.ErrorContext(r.Context(), "Gold price fetch failed",
			"error", err,
			"city", city)
		writeError(w, http.StatusBadGateway, msgGoldUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"city": city, "prices": prices})
}

func (s *Server) handlePPP(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := s.ppp.Answer(query)
	if errors.Is(err, ppp.ErrNoCity) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "purchasing power lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Response: answer})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"number": s.ownerNumber})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-polls/auth"
	"github.com/danielhkuo/quickly-polls/cliparse"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/store"
)

// MaxTextLength caps question and choice text, in characters
const MaxTextLength = 200

// QuestionAdmin is the write side of the question store
type QuestionAdmin interface {
	CreateQuestion(ctx context.Context, text string, pubDate time.Time) (*models.Question, error)
	CreateChoice(ctx context.Context, questionID, text string) (*models.Choice, error)
	GetWithChoices(ctx context.Context, id string) (*models.Question, error)
}

type AdminHandler struct {
	repo QuestionAdmin
	cfg  cliparse.Config
	now  func() time.Time
}

func NewAdminHandler(repo QuestionAdmin, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{repo: repo, cfg: cfg, now: time.Now}
}

// CreateQuestion handles POST /api/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, msg := validText("question_text", req.QuestionText)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	// Publish immediately unless a date is given
	pubDate := h.now()
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}

	question, err := h.repo.CreateQuestion(r.Context(), text, pubDate)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	adminKey := auth.GenerateAdminKey(question.ID, h.cfg.AdminKeySalt)

	slog.Info("question created", "question_id", question.ID, "pub_date", question.PubDate)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: question.ID,
		AdminKey:   adminKey,
	})
}

// GetQuestion handles GET /api/questions/{id}
// Returns the question with all choices and votes, published or not
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	question, err := h.repo.GetWithChoices(r.Context(), questionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// AddChoice handles POST /api/questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text, msg := validText("choice_text", req.ChoiceText)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	choice, err := h.repo.CreateChoice(r.Context(), questionID, text)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to insert choice", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", choice.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{
		ChoiceID: choice.ID,
	})
}

// authorize checks the X-Admin-Key header against the question in the path
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return "", false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(questionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}

	return questionID, true
}

// validText trims s and returns it, or a message saying why it is rejected
func validText(field, s string) (string, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", field + " is required"
	}
	if utf8.RuneCountInString(s) > MaxTextLength {
		return "", fmt.Sprintf("%s must be at most %d characters", field, MaxTextLength)
	}
	return s, ""
}

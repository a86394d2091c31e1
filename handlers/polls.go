// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/store"
	"github.com/danielhkuo/quickly-polls/views"
)

// QuestionRepository is the read and vote side of the question store
type QuestionRepository interface {
	ListPublishedWithChoices(ctx context.Context, now time.Time) ([]models.Question, error)
	GetPublished(ctx context.Context, id string, now time.Time) (*models.Question, error)
	GetWithChoices(ctx context.Context, id string) (*models.Question, error)
	Vote(ctx context.Context, questionID, choiceID string) error
}

type PollHandler struct {
	repo  QuestionRepository
	views *views.Renderer
	now   func() time.Time
}

func NewPollHandler(repo QuestionRepository, renderer *views.Renderer) *PollHandler {
	return &PollHandler{repo: repo, views: renderer, now: time.Now}
}

// Index handles GET /polls/
// Lists published questions that have at least one choice, newest first
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	questions, err := h.repo.ListPublishedWithChoices(r.Context(), now)
	if err != nil {
		h.serverError(w, "failed to list questions", err)
		return
	}

	h.render(w, http.StatusOK, views.PageIndex, views.IndexPage{
		LatestQuestionList: questions,
		Now:                now,
	})
}

// Detail handles GET /polls/{id}/
// Returns 404 for unknown questions and for questions not yet published
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, ok := h.publishedQuestion(w, r)
	if !ok {
		return
	}

	h.render(w, http.StatusOK, views.PageDetail, views.DetailPage{Question: question})
}

// publishedQuestion loads the question named in the path, writing a 404 or
// 500 response and returning false when it cannot be shown.
func (h *PollHandler) publishedQuestion(w http.ResponseWriter, r *http.Request) (*models.Question, bool) {
	id := r.PathValue("id")
	if id == "" {
		h.notFound(w)
		return nil, false
	}

	question, err := h.repo.GetPublished(r.Context(), id, h.now())
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w)
		return nil, false
	}
	if err != nil {
		h.serverError(w, "failed to get question", err, "question_id", id)
		return nil, false
	}

	return question, true
}

func (h *PollHandler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *PollHandler) notFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, views.PageError, views.ErrorPage{
		Status:  http.StatusNotFound,
		Message: "No question matches the given query.",
	})
}

func (h *PollHandler) serverError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	slog.Error(msg, append([]any{"error", err}, attrs...)...)
	h.render(w, http.StatusInternalServerError, views.PageError, views.ErrorPage{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again later.",
	})
}

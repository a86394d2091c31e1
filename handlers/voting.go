// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-polls/store"
	"github.com/danielhkuo/quickly-polls/urls"
	"github.com/danielhkuo/quickly-polls/views"
)

// MsgNoChoice is shown on the detail page when a vote names no valid choice.
// The page renders it HTML-escaped.
const MsgNoChoice = "You didn't select a choice."

// Vote handles POST /polls/{id}/vote/
// Adds one vote to the posted choice and redirects to the results page
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	// Same visibility as the detail page
	question, ok := h.publishedQuestion(w, r)
	if !ok {
		return
	}

	choiceID := r.PostFormValue("choice")
	if choiceID == "" {
		h.render(w, http.StatusOK, views.PageDetail, views.DetailPage{
			Question:     question,
			ErrorMessage: MsgNoChoice,
		})
		return
	}

	err := h.repo.Vote(r.Context(), question.ID, choiceID)
	if errors.Is(err, store.ErrChoiceNotFound) {
		h.render(w, http.StatusOK, views.PageDetail, views.DetailPage{
			Question:     question,
			ErrorMessage: MsgNoChoice,
		})
		return
	}
	if err != nil {
		h.serverError(w, "failed to record vote", err, "question_id", question.ID, "choice_id", choiceID)
		return
	}

	slog.Info("vote recorded", "question_id", question.ID, "choice_id", choiceID)

	// Post/redirect/get
	http.Redirect(w, r, urls.MustReverse(urls.Results, question.ID), http.StatusSeeOther)
}

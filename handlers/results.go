// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/quickly-polls/store"
	"github.com/danielhkuo/quickly-polls/views"
)

// Results handles GET /polls/{id}/results/
// Shows every choice with its vote count. Unlike Detail there is no
// pub date check: only unknown questions return 404.
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.notFound(w)
		return
	}

	question, err := h.repo.GetWithChoices(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w)
		return
	}
	if err != nil {
		h.serverError(w, "failed to get results", err, "question_id", id)
		return
	}

	h.render(w, http.StatusOK, views.PageResults, views.ResultsPage{Question: question})
}

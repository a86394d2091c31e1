// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the polls pages and the
admin API.

# Handler Types

  - PollHandler: index, detail, results and vote pages (HTML)
  - AdminHandler: question and choice creation (JSON)

Handlers depend on small repository interfaces, satisfied by
store.QuestionStore:

	repo := store.NewQuestionStore(db)
	polls := handlers.NewPollHandler(repo, renderer)
	admin := handlers.NewAdminHandler(repo, cfg)

# Pages

	GET  /polls/              → Index   (published questions with choices, newest first)
	GET  /polls/{id}/         → Detail  (404 when missing or not yet published)
	GET  /polls/{id}/results/ → Results (404 only when missing)
	POST /polls/{id}/vote/    → Vote    (303 to results, or the detail page with an error)

# Admin API

	POST /api/questions              → CreateQuestion (returns admin_key)
	GET  /api/questions/{id}         → GetQuestion
	POST /api/questions/{id}/choices → AddChoice

Everything under a question id requires the X-Admin-Key header.
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-polls/cliparse"
	"github.com/danielhkuo/quickly-polls/handlers"
	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/store"
	"github.com/danielhkuo/quickly-polls/urls"
	"github.com/danielhkuo/quickly-polls/views"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize handlers
	questions := store.NewQuestionStore(db)
	pollHandler := handlers.NewPollHandler(questions, renderer)
	adminHandler := handlers.NewAdminHandler(questions, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll pages (public)
	mux.HandleFunc(urls.Pattern(urls.Index), middleware.WithLogging(pollHandler.Index))
	mux.HandleFunc(urls.Pattern(urls.Detail), middleware.WithLogging(pollHandler.Detail))
	mux.HandleFunc(urls.Pattern(urls.Results), middleware.WithLogging(pollHandler.Results))
	mux.HandleFunc(urls.Pattern(urls.Vote), middleware.WithLogging(pollHandler.Vote))

	// Question management (admin operations)
	mux.HandleFunc("POST /api/questions", middleware.WithLogging(adminHandler.CreateQuestion))
	mux.HandleFunc("GET /api/questions/{id}", middleware.WithLogging(adminHandler.GetQuestion))
	mux.HandleFunc("POST /api/questions/{id}/choices", middleware.WithLogging(adminHandler.AddChoice))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, urls.MustReverse(urls.Index), http.StatusFound)
	})

	return mux, nil
}

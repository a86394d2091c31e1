// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/urls"
)

// Page names
const (
	PageIndex   = "index.html"
	PageDetail  = "detail.html"
	PageResults = "results.html"
	PageError   = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexPage is the data for the question list
type IndexPage struct {
	LatestQuestionList []models.Question
	Now                time.Time // reference time for publication ages
}

// DetailPage is the data for a single question with its vote form
type DetailPage struct {
	Question     *models.Question
	ErrorMessage string
}

// ResultsPage is the data for a question's vote tallies
type ResultsPage struct {
	Question *models.Question
}

// ErrorPage is the data for error responses such as 404
type ErrorPage struct {
	Status  int
	Message string
}

// Renderer executes the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"url":        urls.Reverse,
	"since":      Since,
	"votes":      FormatVotes,
	"statusText": http.StatusText,
}

// New parses every page together with the base layout
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{PageIndex, PageDetail, PageResults, PageError} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

// Render writes page with the given status. The page is executed into a
// buffer first so a template failure never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Since renders the age of t relative to now, such as "5 days ago"
func Since(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatVotes renders a vote count such as "0 votes", "1 vote" or "1,234 votes"
func FormatVotes(n int) string {
	return humanize.Comma(int64(n)) + " " + english.PluralWord(n, "vote", "")
}

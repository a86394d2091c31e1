// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-polls/middleware"
	"github.com/danielhkuo/quickly-polls/models"
	"github.com/danielhkuo/quickly-polls/router"
	"github.com/danielhkuo/quickly-polls/testutil"
)

// captureLogs routes the default logger into a buffer of JSON lines for the
// rest of the test
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Expected JSON log line, got %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		remoteAddr string
		headers    map[string]string
		status     int
		body       string
		wantRemote string
	}{
		{
			name:       "index page",
			method:     "GET",
			path:       "/polls/",
			remoteAddr: "192.0.2.10:51234",
			status:     http.StatusOK,
			body:       "<ul></ul>",
			wantRemote: "192.0.2.10",
		},
		{
			name:       "vote redirect behind a proxy",
			method:     "POST",
			path:       "/polls/q1/vote/",
			remoteAddr: "10.0.0.1:8080",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"},
			status:     http.StatusSeeOther,
			wantRemote: "198.51.100.4",
		},
		{
			name:       "missing question over IPv6",
			method:     "GET",
			path:       "/polls/missing/",
			remoteAddr: "[::1]:54321",
			status:     http.StatusNotFound,
			body:       "No question matches the given query.",
			wantRemote: "::1",
		},
		{
			name:       "admin key rejected",
			method:     "POST",
			path:       "/api/questions/q1/choices",
			remoteAddr: "192.0.2.10:51234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			status:     http.StatusUnauthorized,
			body:       `{"error":"Unauthorized"}`,
			wantRemote: "203.0.113.7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t, slog.LevelInfo)

			handler := middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			// The wrapped response is untouched
			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body %q, got %q", tc.body, w.Body.String())
			}

			entries := logEntries(t, logs)
			if len(entries) != 1 {
				t.Fatalf("Expected 1 log line at info level, got %d", len(entries))
			}
			entry := entries[0]
			if entry["msg"] != "request completed" {
				t.Errorf("Expected 'request completed', got %v", entry["msg"])
			}
			if entry["method"] != tc.method || entry["path"] != tc.path {
				t.Errorf("Expected %s %s in log, got %v %v", tc.method, tc.path, entry["method"], entry["path"])
			}
			if entry["status"] != float64(tc.status) {
				t.Errorf("Expected status %d in log, got %v", tc.status, entry["status"])
			}
			if entry["remote"] != tc.wantRemote {
				t.Errorf("Expected remote %s, got %v", tc.wantRemote, entry["remote"])
			}
			if _, ok := entry["duration_ms"]; !ok {
				t.Error("Expected duration_ms in log")
			}
		})
	}
}

func TestWithLogging_DebugLogsStart(t *testing.T) {
	logs := captureLogs(t, slog.LevelDebug)

	handler := middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/polls/", nil))

	entries := logEntries(t, logs)
	if len(entries) != 2 {
		t.Fatalf("Expected start and completion lines, got %d", len(entries))
	}
	if entries[0]["msg"] != "request started" {
		t.Errorf("Expected 'request started' first, got %v", entries[0]["msg"])
	}
	// Handlers that never call WriteHeader are logged as 200
	if entries[1]["status"] != float64(http.StatusOK) {
		t.Errorf("Expected implicit status 200, got %v", entries[1]["status"])
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"first hop of the proxy chain", map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"}, "10.0.0.1:8080", "198.51.100.4"},
		{"X-Real-IP", map[string]string{"X-Real-IP": "203.0.113.7"}, "10.0.0.1:8080", "203.0.113.7"},
		{"IPv4 with port", nil, "192.0.2.10:51234", "192.0.2.10"},
		{"IPv6 with port", nil, "[2001:db8::7]:443", "2001:db8::7"},
		{"IPv6 without port", nil, "2001:db8::7", "2001:db8::7"},
		{"no port", nil, "192.0.2.10", "192.0.2.10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/polls/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := middleware.GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}

func TestJSONResponse_AdminPayloads(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "question created",
			statusCode: http.StatusCreated,
			data:       models.CreateQuestionResponse{QuestionID: "6f1c", AdminKey: "k3y"},
			expected:   `{"question_id":"6f1c","admin_key":"k3y"}`,
		},
		{
			name:       "choice added",
			statusCode: http.StatusCreated,
			data:       models.AddChoiceResponse{ChoiceID: "c9"},
			expected:   `{"choice_id":"c9"}`,
		},
		{
			name:       "question with tallies",
			statusCode: http.StatusOK,
			data: models.Question{ID: "6f1c", QuestionText: "Lunch?", Choices: []models.Choice{
				{ID: "c9", QuestionID: "6f1c", ChoiceText: "Pizza", Votes: 2},
			}},
			expected: `{"id":"6f1c","question_text":"Lunch?","pub_date":"0001-01-01T00:00:00Z","choices":[{"id":"c9","question_id":"6f1c","choice_text":"Pizza","votes":2}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			middleware.JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")

	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Unauthorized" || resp.Message != "Invalid admin key" {
		t.Errorf("Expected Unauthorized / Invalid admin key, got %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("question with pub date", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions",
			strings.NewReader(`{"question_text":"Lunch?","pub_date":"2025-01-02T03:04:05Z"}`))

		var parsed models.CreateQuestionRequest
		if err := middleware.ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.QuestionText != "Lunch?" {
			t.Errorf("Expected question_text 'Lunch?', got '%s'", parsed.QuestionText)
		}
		if parsed.PubDate == nil || parsed.PubDate.Day() != 2 {
			t.Errorf("Expected pub_date on the 2nd, got %v", parsed.PubDate)
		}
	})

	t.Run("question without pub date", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions", strings.NewReader(`{"question_text":"Lunch?"}`))

		var parsed models.CreateQuestionRequest
		if err := middleware.ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.PubDate != nil {
			t.Errorf("Expected nil pub_date, got %v", parsed.PubDate)
		}
	})

	t.Run("malformed pub date", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions",
			strings.NewReader(`{"question_text":"Lunch?","pub_date":"tomorrow"}`))

		var parsed models.CreateQuestionRequest
		if err := middleware.ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for a pub_date that is not RFC 3339")
		}
	})

	t.Run("empty choice body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/questions/q1/choices", strings.NewReader(""))

		var parsed models.AddChoiceRequest
		if err := middleware.ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}

func TestCORS_AdminAPI(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	mux, err := router.NewRouter(conn, testutil.GetTestConfig())
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	handler := middleware.CORS(mux)

	const origin = "https://admin.polls.example"

	t.Run("preflight for adding a choice", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/questions/q1/choices", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type, x-admin-key")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty preflight body, got %q", w.Body.String())
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("Expected allowed origin %s, got %s", origin, got)
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST") {
			t.Error("Expected POST in allowed methods")
		}
		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, h := range []string{"Content-Type", "X-Admin-Key"} {
			if !strings.Contains(allowed, h) {
				t.Errorf("Expected %s in allowed headers, got %s", h, allowed)
			}
		}
	})

	t.Run("cross-origin question creation", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/questions",
			models.CreateQuestionRequest{QuestionText: "Lunch?"},
			map[string]string{"Origin": origin})
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Errorf("Expected allowed origin %s, got %s", origin, got)
		}

		var resp models.CreateQuestionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.QuestionID == "" || resp.AdminKey == "" {
			t.Errorf("Expected question_id and admin_key, got %+v", resp)
		}
	})

	t.Run("same-origin page gets wildcard", func(t *testing.T) {
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, httptest.NewRequest("GET", "/polls/", nil))

		testutil.AssertContains(t, w, "No polls are available.")
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected wildcard origin, got %s", got)
		}
	})
}

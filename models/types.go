package models

import "time"

// RecentWindow is how far back a question still counts as recently published.
const RecentWindow = 24 * time.Hour

// Request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
	AdminKey   string `json:"admin_key"`
}

type AddChoiceResponse struct {
	ChoiceID string `json:"choice_id"`
}

// Domain types

type Question struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Choices      []Choice  `json:"choices,omitempty"`
}

// String returns the question text, which is how a question is shown in lists.
func (q Question) String() string {
	return q.QuestionText
}

// IsPublished reports whether the question's pub date is at or before now.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently reports whether the pub date falls in (now-24h, now].
// Future-dated questions are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.IsPublished(now) && q.PubDate.After(now.Add(-RecentWindow))
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

// TotalVotes sums the votes across the question's loaded choices.
func (q Question) TotalVotes() int {
	total := 0
	for _, c := range q.Choices {
		total += c.Votes
	}
	return total
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

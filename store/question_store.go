// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store is the repository for questions and choices. Every query the
// pages need is a method here, so handlers never see SQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-polls/models"
)

var (
	ErrNotFound       = errors.New("question not found")
	ErrChoiceNotFound = errors.New("choice not found")
)

// QuestionStore handles database operations for questions and their choices
type QuestionStore struct {
	db *sql.DB
}

// NewQuestionStore creates a new QuestionStore
func NewQuestionStore(db *sql.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// ListPublishedWithChoices returns questions published at or before now that
// have at least one choice, most recently published first.
func (s *QuestionStore) ListPublishedWithChoices(ctx context.Context, now time.Time) ([]models.Question, error) {
	query := `
		SELECT q.id, q.question_text, q.pub_date
		FROM question q
		WHERE q.pub_date <= $1
		  AND EXISTS (SELECT 1 FROM choice c WHERE c.question_id = q.id)
		ORDER BY q.pub_date DESC, q.id
	`

	rows, err := s.db.QueryContext(ctx, query, formatTimestamp(now))
	if err != nil {
		return nil, fmt.Errorf("failed to list published questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, timestamp{&q.PubDate}); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

// GetPublished retrieves a question with its choices. A question dated after
// now is reported as ErrNotFound, exactly like a missing one.
func (s *QuestionStore) GetPublished(ctx context.Context, id string, now time.Time) (*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1 AND pub_date <= $2
	`

	q, err := s.getQuestion(ctx, query, id, formatTimestamp(now))
	if err != nil {
		return nil, err
	}

	q.Choices, err = s.listChoices(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	return q, nil
}

// GetWithChoices retrieves a question with its choices and vote counts,
// whatever its pub date.
func (s *QuestionStore) GetWithChoices(ctx context.Context, id string) (*models.Question, error) {
	query := `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`

	q, err := s.getQuestion(ctx, query, id)
	if err != nil {
		return nil, err
	}

	q.Choices, err = s.listChoices(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	return q, nil
}

// CreateQuestion inserts a question published at pubDate
func (s *QuestionStore) CreateQuestion(ctx context.Context, text string, pubDate time.Time) (*models.Question, error) {
	q := &models.Question{
		ID:           uuid.NewString(),
		QuestionText: text,
		PubDate:      pubDate.UTC().Truncate(time.Microsecond),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO question (id, question_text, pub_date)
		VALUES ($1, $2, $3)
	`, q.ID, q.QuestionText, formatTimestamp(q.PubDate))
	if err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	return q, nil
}

// CreateChoice adds a choice with zero votes to an existing question. Choices
// are numbered per question in insertion order.
func (s *QuestionStore) CreateChoice(ctx context.Context, questionID, text string) (*models.Choice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM question WHERE id = $1)
	`, questionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check question %s: %w", questionID, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var position int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 0) + 1 FROM choice WHERE question_id = $1
	`, questionID).Scan(&position)
	if err != nil {
		return nil, fmt.Errorf("failed to number choice: %w", err)
	}

	c := &models.Choice{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		ChoiceText: text,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO choice (id, question_id, choice_text, votes, position, created_at)
		VALUES ($1, $2, $3, 0, $4, $5)
	`, c.ID, c.QuestionID, c.ChoiceText, position, formatTimestamp(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to insert choice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit choice: %w", err)
	}

	return c, nil
}

// Vote adds one vote to a choice of the given question. The increment is a
// single UPDATE so concurrent votes never lose counts.
func (s *QuestionStore) Vote(ctx context.Context, questionID, choiceID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE choice SET votes = votes + 1
		WHERE id = $1 AND question_id = $2
	`, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read vote result: %w", err)
	}
	if n == 0 {
		return ErrChoiceNotFound
	}

	return nil
}

func (s *QuestionStore) getQuestion(ctx context.Context, query string, args ...any) (*models.Question, error) {
	var q models.Question
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&q.ID,
		&q.QuestionText,
		timestamp{&q.PubDate},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return &q, nil
}

func (s *QuestionStore) listChoices(ctx context.Context, questionID string) ([]models.Choice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY position, created_at, id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices for question %s: %w", questionID, err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate choices: %w", err)
	}

	return choices, nil
}

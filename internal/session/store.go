package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id has never been initialized.
var ErrNotFound = errors.New("session not found")

// Answer records which option a user picked for a question. A session
// holds at most one answer per question; submitting again for the same
// question replaces the earlier pick.
type Answer struct {
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

// Session holds the quiz state for one user.
type Session struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Answers   []Answer  `json:"answers"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the answer store backing the recommendation flow. Answers returns
// the recorded answers in submission order; for an unknown session it returns
// an empty slice and no error so downstream consumers always have input.
type Store interface {
	Init(ctx context.Context, id, nickname string) (*Session, error)
	Put(ctx context.Context, id string, answer Answer) error
	Get(ctx context.Context, id string) (*Session, error)
	Answers(ctx context.Context, id string) ([]Answer, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// upsertAnswer applies last-write-wins semantics per question.
func upsertAnswer(answers []Answer, answer Answer) []Answer {
	for i := range answers {
		if answers[i].QuestionID == answer.QuestionID {
			answers[i].OptionID = answer.OptionID
			return answers
		}
	}
	return append(answers, answer)
}

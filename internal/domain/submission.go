package domain

import (
	"fmt"
	"time"
)

// SubmissionKind distinguishes property requests from questions
type SubmissionKind string

const (
	KindRequest  SubmissionKind = "request"
	KindQuestion SubmissionKind = "question"
)

// KindForState returns the submission kind collected in an awaiting state
func KindForState(s UserState) (SubmissionKind, bool) {
	switch s {
	case StateAwaitingRequest:
		return KindRequest, true
	case StateAwaitingQuestion:
		return KindQuestion, true
	}
	return "", false
}

// Submission is one free-text message consumed in an awaiting state.
// It is forwarded to the administrator and optionally journaled.
type Submission struct {
	ID        int64
	Kind      SubmissionKind
	UserID    int64
	FirstName string
	Username  string
	Text      string
	SentAt    time.Time
	Notified  bool
}

const (
	defaultDisplayName = "Пользователь"
	defaultHandle      = "без username"
	timeLayout         = "02.01.2006 15:04"
)

// DisplayName returns sender's first name or a placeholder
func (s Submission) DisplayName() string {
	if s.FirstName == "" {
		return defaultDisplayName
	}
	return s.FirstName
}

// Handle returns sender's username or a placeholder
func (s Submission) Handle() string {
	if s.Username == "" {
		return defaultHandle
	}
	return s.Username
}

// AdminMessage formats the notification delivered to the administrator
func (s Submission) AdminMessage() string {
	header, label := "📥 НОВАЯ ЗАЯВКА", "📝 Заявка"
	if s.Kind == KindQuestion {
		header, label = "❓ НОВЫЙ ВОПРОС", "💬 Вопрос"
	}

	return fmt.Sprintf(
		"%s\n\n👤 Пользователь: %s (@%s)\n🆔 ID: %d\n%s: %s\n🕒 Время: %s",
		header,
		s.DisplayName(),
		s.Handle(),
		s.UserID,
		label,
		s.Text,
		s.SentAt.Format(timeLayout),
	)
}

package testutil

import (
	"polarproperty/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockSessionStore is a mock for SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(userID int64) (domain.UserState, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.UserState), args.Error(1)
}

func (m *MockSessionStore) Set(userID int64, state domain.UserState) error {
	args := m.Called(userID, state)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockSessionStore) Cleanup() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// MockSubmissionRepository is a mock for SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) SaveSubmission(sub *domain.Submission) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockSubmissionRepository) MarkNotified(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSubmissionRepository) CleanOldSubmissions(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockSender is a mock for the outbound bot API
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

// MockMemberLookup is a mock for channel membership queries
type MockMemberLookup struct {
	mock.Mock
}

func (m *MockMemberLookup) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	args := m.Called(chat, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.ChatMember), args.Error(1)
}

package handler

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"polarproperty/internal/domain"
	"polarproperty/internal/repository/memory"
	"polarproperty/internal/service"
	"polarproperty/internal/testutil"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	testUserID  = int64(123)
	testAdminID = int64(999)
)

type outgoing struct {
	what   interface{}
	markup *tele.ReplyMarkup
}

// text returns the message text or the photo caption
func (o outgoing) text() string {
	switch v := o.what.(type) {
	case string:
		return v
	case *tele.Photo:
		return v.Caption
	}
	return ""
}

// fakeContext records what the handler sends. Methods not overridden panic.
type fakeContext struct {
	tele.Context

	sender   *tele.User
	chat     *tele.Chat
	callback *tele.Callback
	message  *tele.Message

	editErr  error
	sendErrs []error

	sent      []outgoing
	edited    []outgoing
	responded int
}

func newTextContext(text string) *fakeContext {
	chat := &tele.Chat{ID: testUserID}
	return &fakeContext{
		sender: testutil.NewTestUser(testUserID, "Ivan", "ivanp"),
		chat:   chat,
		message: &tele.Message{
			Text:     text,
			Chat:     chat,
			Unixtime: time.Date(2024, 6, 15, 9, 5, 0, 0, time.Local).Unix(),
		},
	}
}

func newCallbackContext(unique string) *fakeContext {
	chat := &tele.Chat{ID: testUserID}
	return &fakeContext{
		sender: testutil.NewTestUser(testUserID, "Ivan", "ivanp"),
		chat:   chat,
		callback: &tele.Callback{
			ID:      "cb",
			Unique:  unique,
			Message: &tele.Message{ID: 10, Chat: chat},
		},
	}
}

func (c *fakeContext) Sender() *tele.User { return c.sender }
func (c *fakeContext) Chat() *tele.Chat { return c.chat }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }
func (c *fakeContext) Message() *tele.Message { return c.message }
func (c *fakeContext) Update() tele.Update { return tele.Update{ID: 1} }

func (c *fakeContext) Text() string {
	if c.message == nil {
		return ""
	}
	return c.message.Text
}

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	if len(c.sendErrs) > 0 {
		err := c.sendErrs[0]
		c.sendErrs = c.sendErrs[1:]
		if err != nil {
			return err
		}
	}
	c.sent = append(c.sent, outgoing{what: what, markup: markupOf(opts)})
	return nil
}

func (c *fakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.editErr != nil {
		return c.editErr
	}
	c.edited = append(c.edited, outgoing{what: what, markup: markupOf(opts)})
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responded++
	return nil
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}

// buttons flattens an inline keyboard into unique ids (or URLs for link buttons)
func buttons(m *tele.ReplyMarkup) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, row := range m.InlineKeyboard {
		for _, btn := range row {
			if btn.URL != "" {
				out = append(out, btn.URL)
				continue
			}
			out = append(out, btn.Unique)
		}
	}
	return out
}

type testEnv struct {
	handler  *Handler
	sessions *memory.SessionStore
	sender   *testutil.MockSender
	members  *testutil.MockMemberLookup
}

type envOptions struct {
	bypass      bool
	adminID     int64
	catalogPath string
	photoURL    string
	logger      *zap.Logger
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	if opts.catalogPath == "" {
		opts.catalogPath = filepath.Join(t.TempDir(), "missing.pdf")
	}
	if opts.logger == nil {
		opts.logger = testutil.NewTestLogger()
	}

	env := &testEnv{
		sessions: memory.NewSessionStore(time.Hour),
		sender:   new(testutil.MockSender),
		members:  new(testutil.MockMemberLookup),
	}

	subscription := service.NewSubscriptionService(env.members, service.NewChannel("@PolarProperty"), opts.bypass, opts.logger)
	catalog := service.NewCatalogService(env.sender, opts.catalogPath, opts.logger)
	submissions := service.NewSubmissionService(env.sender, opts.adminID, nil, opts.logger)

	env.handler = NewHandler(nil, env.sessions, subscription, catalog, submissions, opts.photoURL, opts.logger)
	return env
}

func (e *testEnv) state(t *testing.T) domain.UserState {
	t.Helper()
	state, err := e.sessions.Get(testUserID)
	require.NoError(t, err)
	return state
}

func (e *testEnv) expectMember(role tele.MemberStatus) {
	e.members.On("ChatMemberOf", service.NewChannel("@PolarProperty"), mock.Anything).
		Return(testutil.NewMember(testUserID, role), nil)
}

func (e *testEnv) expectCatalog() {
	e.sender.On("Send", &tele.Chat{ID: testUserID}, mock.MatchedBy(func(doc *tele.Document) bool {
		return doc.FileName == "catalog.pdf"
	})).Return(&tele.Message{}, nil).Once()
}

func (e *testEnv) expectAdminMessage(contains string) {
	e.sender.On("Send", tele.ChatID(testAdminID), mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, contains)
	})).Return(&tele.Message{}, nil).Once()
}

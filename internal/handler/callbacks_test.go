package handler

import (
	"fmt"
	"testing"

	"polarproperty/internal/domain"
	"polarproperty/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "catalog",
			expected: "catalog",
		},
		{
			name:     "string with whitespace",
			input:    "  catalog  ",
			expected: "catalog",
		},
		{
			name:     "string with newline",
			input:    "cata\nlog",
			expected: "catalog",
		},
		{
			name:     "button unique prefix",
			input:    "\fcatalog",
			expected: "catalog",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "menu\x00\x01",
			expected: "menu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCatalog_BypassSkipsOracle(t *testing.T) {
	env := newTestEnv(t, envOptions{bypass: true, catalogPath: testutil.WriteCatalog(t)})
	env.expectCatalog()
	c := newCallbackContext("catalog")

	require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

	env.members.AssertNotCalled(t, "ChatMemberOf", mock.Anything, mock.Anything)
	env.sender.AssertExpectations(t)
	require.Len(t, c.sent, 1)
	assert.Equal(t, catalogSentText, c.sent[0].what)
	assert.Equal(t, []string{"menu"}, buttons(c.sent[0].markup))
	assert.Equal(t, 1, c.responded)
}

func TestCatalog_NotSubscribed(t *testing.T) {
	for _, role := range []tele.MemberStatus{tele.Left, tele.Kicked} {
		t.Run(string(role), func(t *testing.T) {
			env := newTestEnv(t, envOptions{catalogPath: testutil.WriteCatalog(t)})
			env.expectMember(role)
			c := newCallbackContext("catalog")

			require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

			assert.Empty(t, c.sent)
			require.Len(t, c.edited, 1)
			assert.Equal(t, subscribeText("@PolarProperty"), c.edited[0].what)
			assert.Equal(t,
				[]string{"https://t.me/PolarProperty", "catalog", "menu"},
				buttons(c.edited[0].markup),
			)
			env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalog_RecheckAfterSubscribing(t *testing.T) {
	env := newTestEnv(t, envOptions{catalogPath: testutil.WriteCatalog(t)})
	env.members.On("ChatMemberOf", mock.Anything, mock.Anything).
		Return(testutil.NewMember(testUserID, tele.Left), nil).Once()
	env.members.On("ChatMemberOf", mock.Anything, mock.Anything).
		Return(testutil.NewMember(testUserID, tele.Member), nil).Once()
	env.expectCatalog()

	first := newCallbackContext("catalog")
	require.NoError(t, env.handler.dispatch(first, domain.ActionCatalog))
	require.Len(t, first.edited, 1)

	// the re-check button carries the catalog action
	recheck := first.edited[0].markup.InlineKeyboard[1][0].Unique
	action, ok := domain.ParseMenuAction(recheck)
	require.True(t, ok)

	second := newCallbackContext(recheck)
	require.NoError(t, env.handler.dispatch(second, action))

	require.Len(t, second.sent, 1)
	assert.Equal(t, catalogSentText, second.sent[0].what)
	env.sender.AssertExpectations(t)
}

func TestCatalog_OracleFailure(t *testing.T) {
	env := newTestEnv(t, envOptions{catalogPath: testutil.WriteCatalog(t)})
	env.members.On("ChatMemberOf", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("telegram: bot is not a member of the channel chat (400)"))
	c := newCallbackContext("catalog")

	require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

	require.Len(t, c.edited, 1)
	assert.Equal(t, subscriptionUnavailableText("@PolarProperty"), c.edited[0].what)
	assert.Equal(t,
		[]string{"https://t.me/PolarProperty", "catalog", "menu"},
		buttons(c.edited[0].markup),
	)
	env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCatalog_MemberReceivesDocument(t *testing.T) {
	for _, role := range []tele.MemberStatus{tele.Member, tele.Administrator, tele.Creator} {
		t.Run(string(role), func(t *testing.T) {
			env := newTestEnv(t, envOptions{catalogPath: testutil.WriteCatalog(t)})
			env.expectMember(role)
			env.expectCatalog()
			c := newCallbackContext("catalog")

			require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

			env.sender.AssertExpectations(t)
			require.Len(t, c.sent, 1)
			assert.Equal(t, catalogSentText, c.sent[0].what)
		})
	}
}

func TestCatalog_DocumentMissing(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.expectMember(tele.Member)
	c := newCallbackContext("catalog")

	require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

	env.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	require.Len(t, c.sent, 1)
	assert.Equal(t, catalogUnavailableText, c.sent[0].what)
	assert.Equal(t, []string{"menu"}, buttons(c.sent[0].markup))
}

func TestCatalog_DeliveryFailure(t *testing.T) {
	env := newTestEnv(t, envOptions{catalogPath: testutil.WriteCatalog(t)})
	env.expectMember(tele.Member)
	env.sender.On("Send", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("telegram: Forbidden (403)"))
	c := newCallbackContext("catalog")

	require.NoError(t, env.handler.dispatch(c, domain.ActionCatalog))

	require.Len(t, c.sent, 1)
	assert.Equal(t, catalogUnavailableText, c.sent[0].what)
}

func TestContact(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	c := newCallbackContext("contact")

	require.NoError(t, env.handler.dispatch(c, domain.ActionContact))

	assert.Empty(t, c.sent)
	require.Len(t, c.edited, 1)
	assert.Equal(t, contactText, c.edited[0].what)
	assert.Equal(t, []string{"menu"}, buttons(c.edited[0].markup))
	assert.Equal(t, domain.StateIdle, env.state(t))
}

func TestRender_EditRejectedFallsBackToSend(t *testing.T) {
	for _, editErr := range []error{
		fmt.Errorf("telegram: Bad Request: message is not modified (400)"),
		fmt.Errorf("telegram: Bad Request: there is no text in the message to edit (400)"),
		fmt.Errorf("telegram: Bad Request: message can't be edited (400)"),
	} {
		t.Run(editErr.Error(), func(t *testing.T) {
			env := newTestEnv(t, envOptions{})
			c := newCallbackContext("contact")
			c.editErr = editErr

			require.NoError(t, env.handler.dispatch(c, domain.ActionContact))

			assert.Empty(t, c.edited)
			require.Len(t, c.sent, 1)
			assert.Equal(t, contactText, c.sent[0].what)
			assert.Equal(t, []string{"menu"}, buttons(c.sent[0].markup))
		})
	}
}

func TestMenu_IdempotentAndKeepsState(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	require.NoError(t, env.sessions.Set(testUserID, domain.StateAwaitingRequest))

	for i := 0; i < 3; i++ {
		c := newCallbackContext("menu")
		if i > 0 {
			c.editErr = fmt.Errorf("telegram: Bad Request: message is not modified (400)")
		}

		require.NoError(t, env.handler.dispatch(c, domain.ActionMenu))

		rendered := append(c.edited, c.sent...)
		require.Len(t, rendered, 1)
		assert.Equal(t, menuText, rendered[0].what)
		assert.Equal(t, []string{"catalog", "request", "question", "contact"}, buttons(rendered[0].markup))
		assert.Equal(t, domain.StateAwaitingRequest, env.state(t))
	}
}

func TestPrompt_SetsAwaitingState(t *testing.T) {
	tests := []struct {
		action   domain.MenuAction
		expected domain.UserState
		prompt   string
	}{
		{action: domain.ActionRequest, expected: domain.StateAwaitingRequest, prompt: requestPromptText},
		{action: domain.ActionQuestion, expected: domain.StateAwaitingQuestion, prompt: questionPromptText},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			env := newTestEnv(t, envOptions{})
			c := newCallbackContext(string(tt.action))

			require.NoError(t, env.handler.dispatch(c, tt.action))

			require.Len(t, c.sent, 1)
			assert.Equal(t, tt.prompt, c.sent[0].what)
			assert.Equal(t, tt.expected, env.state(t))

			// re-selecting re-prompts without a notice
			again := newCallbackContext(string(tt.action))
			require.NoError(t, env.handler.dispatch(again, tt.action))
			require.Len(t, again.sent, 1)
			assert.Equal(t, tt.prompt, again.sent[0].what)
			assert.Equal(t, tt.expected, env.state(t))
		})
	}
}

func TestPrompt_SwitchingDiscardsPending(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	require.NoError(t, env.handler.dispatch(newCallbackContext("request"), domain.ActionRequest))

	c := newCallbackContext("question")
	require.NoError(t, env.handler.dispatch(c, domain.ActionQuestion))

	require.Len(t, c.sent, 1)
	assert.Equal(t, abandonedNoticeText+"\n\n"+questionPromptText, c.sent[0].what)
	assert.Equal(t, domain.StateAwaitingQuestion, env.state(t))
}

func TestHandleCallback_Routing(t *testing.T) {
	t.Run("plain data", func(t *testing.T) {
		env := newTestEnv(t, envOptions{})
		c := newCallbackContext("")
		c.callback.Data = "contact"

		require.NoError(t, env.handler.handleCallback(c))

		require.Len(t, c.edited, 1)
		assert.Equal(t, contactText, c.edited[0].what)
	})

	t.Run("unknown data", func(t *testing.T) {
		env := newTestEnv(t, envOptions{})
		c := newCallbackContext("")
		c.callback.Data = "page_2"

		require.NoError(t, env.handler.handleCallback(c))

		assert.Empty(t, c.sent)
		assert.Empty(t, c.edited)
		assert.Equal(t, 1, c.responded)
	})
}

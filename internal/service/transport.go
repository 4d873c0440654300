package service

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// Sender delivers outbound messages. *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// MemberLookup queries channel membership. *tele.Bot satisfies it.
type MemberLookup interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// Channel is a public channel addressed by its @username
type Channel string

// NewChannel normalises a channel username to the @name form
func NewChannel(name string) Channel {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return Channel("@" + strings.TrimPrefix(name, "@"))
}

// Recipient implements tele.Recipient
func (c Channel) Recipient() string {
	return string(c)
}

// URL returns the public t.me link of the channel
func (c Channel) URL() string {
	return "https://t.me/" + strings.TrimPrefix(string(c), "@")
}

package service

import (
	"fmt"
	"strconv"

	"polarproperty/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SubscriptionService checks whether a user belongs to the target channel
type SubscriptionService struct {
	members MemberLookup
	channel Channel
	bypass  bool
	logger  *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(members MemberLookup, channel Channel, bypass bool, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		members: members,
		channel: channel,
		bypass:  bypass,
		logger:  logger,
	}
}

// Channel returns the channel users must subscribe to
func (s *SubscriptionService) Channel() Channel {
	return s.channel
}

// IsSubscribed reports whether the user is an active member, administrator or
// creator of the channel. With bypass enabled every user is subscribed.
// A failed lookup returns false and an error wrapping domain.ErrOracleUnavailable.
func (s *SubscriptionService) IsSubscribed(userID int64) (bool, error) {
	if s.bypass {
		return true, nil
	}

	member, err := s.members.ChatMemberOf(s.channel, userRecipient(userID))
	if err != nil {
		s.logger.Warn("Failed to check subscription",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("channel", string(s.channel)),
		)
		return false, fmt.Errorf("%w: %w", domain.ErrOracleUnavailable, err)
	}
	if member == nil {
		return false, fmt.Errorf("%w: empty membership record", domain.ErrOracleUnavailable)
	}

	subscribed := isActiveRole(member.Role)
	s.logger.Debug("Subscription checked",
		zap.Int64("user_id", userID),
		zap.String("status", string(member.Role)),
		zap.Bool("subscribed", subscribed),
	)
	return subscribed, nil
}

func isActiveRole(role tele.MemberStatus) bool {
	switch role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true
	}
	return false
}

type userRecipient int64

func (u userRecipient) Recipient() string {
	return strconv.FormatInt(int64(u), 10)
}

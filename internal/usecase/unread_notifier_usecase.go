package usecase

import (
	"context"
	"fmt"
	"time"

	"campus-market/internal/repo/persistent"
	"campus-market/pkg/logger"
	"campus-market/pkg/mailer"

	"github.com/redis/go-redis/v9"
)

const unreadNotifierSweepName = "notify_unread_messages"

// UnreadNotifierResult is the summary returned by an unread-message sweep.
type UnreadNotifierResult struct {
	Success             bool   `json:"success"`
	EmailsSent          int    `json:"emailsSent"`
	TotalUnreadMessages int    `json:"totalUnreadMessages"`
	Error               string `json:"error,omitempty"`
}

type UnreadNotifierUseCase interface {
	RunUnreadNotifier(ctx context.Context, conversationID string) *UnreadNotifierResult
}

type unreadNotifierUseCase struct {
	messageRepo persistent.MessageRepository
	userRepo    persistent.UserRepository
	mailer      mailer.Sender
	redisClient *redis.Client
	logger      *logger.Logger

	gracePeriod time.Duration
	batchSize   int
	appBaseURL  string
	now         func() time.Time
}

func NewUnreadNotifierUseCase(
	messageRepo persistent.MessageRepository,
	userRepo persistent.UserRepository,
	sender mailer.Sender,
	redisClient *redis.Client,
	logger *logger.Logger,
	gracePeriod time.Duration,
	batchSize int,
	appBaseURL string,
) UnreadNotifierUseCase {
	return &unreadNotifierUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		mailer:      sender,
		redisClient: redisClient,
		logger:      logger,
		gracePeriod: gracePeriod,
		batchSize:   batchSize,
		appBaseURL:  appBaseURL,
		now:         time.Now,
	}
}

// RunUnreadNotifier emails each receiver with unread messages older than the
// grace period, at most once per receiver per sweep. Messages are flagged
// only after a successful dispatch, so a failed email is retried for free on
// the next sweep by the eligibility predicate itself.
func (uc *unreadNotifierUseCase) RunUnreadNotifier(ctx context.Context, conversationID string) *UnreadNotifierResult {
	acquired, release := acquireSweepLock(ctx, uc.redisClient, unreadNotifierSweepName)
	if !acquired {
		uc.logger.Warn("Unread-message sweep already running, skipping")
		return &UnreadNotifierResult{Success: true}
	}
	defer release()

	cutoff := uc.now().Add(-uc.gracePeriod)

	emailsSent := 0
	totalUnread := 0
	notifiedReceivers := make(map[string]bool)
	offset := 0

	for {
		batch, err := uc.messageRepo.GetUnnotifiedBefore(cutoff, conversationID, uc.batchSize, offset)
		if err != nil {
			uc.logger.Error("Unread-message sweep scan failed: %v", err)
			return &UnreadNotifierResult{Success: false, Error: fmt.Sprintf("failed to scan messages: %v", err)}
		}

		totalUnread += len(batch)
		flaggedInBatch := 0

		for _, message := range batch {
			// One email per receiver per sweep, no matter how many unread
			// messages they have across conversations
			if notifiedReceivers[message.ReceiverID] {
				continue
			}

			receiver, err := uc.userRepo.GetByID(message.ReceiverID)
			if err != nil {
				uc.logger.Error("Failed to load receiver %s for message %s: %v", message.ReceiverID, message.ID, err)
				continue
			}

			link := fmt.Sprintf("%s/messages/%s", uc.appBaseURL, message.ConversationID)
			subject := "You have unread messages on Campus Market"
			htmlBody := fmt.Sprintf(
				"<p>Hi %s,</p><p>You have unread messages waiting for you.</p><p><a href=%q>Open the conversation</a></p>",
				receiver.Username, link,
			)

			if err := uc.mailer.Send(ctx, receiver.Email, subject, htmlBody); err != nil {
				// Message stays unflagged and is picked up next sweep
				uc.logger.Error("Failed to email %s for message %s: %v", receiver.Email, message.ID, err)
				continue
			}

			if err := uc.messageRepo.MarkEmailNotified(message.ID); err != nil {
				uc.logger.Warn("Email sent but failed to flag message %s: %v", message.ID, err)
			} else {
				flaggedInBatch++
			}

			emailsSent++
			notifiedReceivers[message.ReceiverID] = true
		}

		if len(batch) < uc.batchSize {
			break
		}
		// Flagged messages drop out of the predicate, shifting later rows
		// left; advance only past the rows that stayed eligible
		offset += len(batch) - flaggedInBatch
	}

	uc.logger.Info("Unread-message sweep finished: emails=%d unread=%d", emailsSent, totalUnread)
	return &UnreadNotifierResult{
		Success:             true,
		EmailsSent:          emailsSent,
		TotalUnreadMessages: totalUnread,
	}
}

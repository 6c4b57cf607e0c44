package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
	repo "github.com/oksasatya/style-gallery-api/internal/domain/repository"
	"github.com/oksasatya/style-gallery-api/pkg/notify"
)

// JobPublisher enqueues a JSON job for the notification worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// NotificationService stores in-app notifications and, when enabled, queues
// an email copy for the recipient.
type NotificationService struct {
	Repo        repo.NotificationRepository
	Users       repo.UserRepository
	Queue       JobPublisher
	ClientURL   string
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewNotificationService(r repo.NotificationRepository, users repo.UserRepository, queue JobPublisher, clientURL string, mailEnabled bool, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Users: users, Queue: queue, ClientURL: strings.TrimRight(clientURL, "/"), MailEnabled: mailEnabled, Logger: logger}
}

// Deliver implements NotificationSink.
func (s *NotificationService) Deliver(ctx context.Context, n *entity.Notification) error {
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	if s.Queue == nil || !s.MailEnabled {
		return nil
	}
	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil || u.Email == "" {
		return err
	}
	name, nerr := entity.DisplayName(u)
	if nerr != nil {
		if s.Logger != nil {
			s.Logger.WithError(nerr).WithField("user_id", u.ID).Warn("recipient has no display name")
		}
		name = fallbackActorName
	}
	job := notify.DispatchJob{
		Channel:  notify.ChannelEmail,
		To:       u.Email,
		Template: notify.TemplateNotification,
		Data: map[string]any{
			"Name":      name,
			"Type":      string(n.Type),
			"Title":     n.Title,
			"Message":   n.Message,
			"ActionURL": s.ClientURL + n.ActionURL,
		},
	}
	return s.Queue.PublishJSON(ctx, job)
}

type NotificationPage struct {
	Items       []*entity.Notification
	UnreadCount int64
}

func (s *NotificationService) List(ctx context.Context, userID string, limit, offset int) (NotificationPage, error) {
	limit, offset = clampPage(limit, offset)
	items, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return NotificationPage{}, err
	}
	unread, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return NotificationPage{}, err
	}
	return NotificationPage{Items: items, UnreadCount: unread}, nil
}

// MarkRead flags one notification of userID as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.Repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return wrapError(ErrNotFound, "Notification not found", err)
		}
		return err
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}

// QueueSMSSender satisfies SMSSender by enqueueing the message for the
// worker, which talks to the SMS gateway.
type QueueSMSSender struct {
	Queue JobPublisher
}

func (q QueueSMSSender) SendSMS(ctx context.Context, phone, body string) error {
	if q.Queue == nil {
		return errors.New("sms queue not configured")
	}
	return q.Queue.PublishJSON(ctx, notify.DispatchJob{Channel: notify.ChannelSMS, To: phone, Text: body})
}

package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"propertywala/internal/mail"
	"propertywala/internal/repository"
)

const welcomeSubject = "Welcome to PropertyWala"

const welcomeBody = `<h2>Welcome to PropertyWala!</h2>
<p>Thanks for subscribing. You will now receive our newsletter with the
latest listings and market updates.</p>`

// MailService handles the mailing list and outbound campaigns.
type MailService interface {
	// Subscribe adds the address to the mailing list and sends the welcome
	// mail. A delivery failure does not undo the subscription.
	Subscribe(ctx context.Context, email string) error
	// SendToAllUsers mails every registered account.
	SendToAllUsers(ctx context.Context, subject, content string) error
	// SendNewsletter mails every mailing-list subscriber.
	SendNewsletter(ctx context.Context, subject, content string) error
}

type mailService struct {
	subscribers repository.SubscriberRepository
	users       repository.UserRepository
	dispatcher  *mail.Dispatcher
	logger      *logrus.Logger
}

func NewMailService(subscribers repository.SubscriberRepository, users repository.UserRepository, dispatcher *mail.Dispatcher, logger *logrus.Logger) MailService {
	if logger == nil {
		logger = logrus.New()
	}
	return &mailService{
		subscribers: subscribers,
		users:       users,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

func (s *mailService) Subscribe(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	if err := s.subscribers.Add(ctx, email); err != nil {
		return err
	}

	if err := s.dispatcher.Send(ctx, mail.Message{
		To:      email,
		Subject: welcomeSubject,
		HTML:    welcomeBody,
	}); err != nil {
		s.logger.WithField("recipient", email).Warnf("welcome mail: %v", err)
	}
	return nil
}

func (s *mailService) SendToAllUsers(ctx context.Context, subject, content string) error {
	if subject == "" || content == "" {
		return ErrMissingFields
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	recipients := make([]string, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, u.Email)
	}

	if failed := s.dispatcher.Broadcast(ctx, recipients, subject, content); failed > 0 {
		s.logger.Warnf("bulk mail: %d of %d deliveries failed", failed, len(recipients))
	}
	return nil
}

func (s *mailService) SendNewsletter(ctx context.Context, subject, content string) error {
	if subject == "" || content == "" {
		return ErrMissingFields
	}

	subscribers, err := s.subscribers.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	recipients := make([]string, 0, len(subscribers))
	for _, sub := range subscribers {
		recipients = append(recipients, sub.Email)
	}

	if failed := s.dispatcher.Broadcast(ctx, recipients, subject, content); failed > 0 {
		s.logger.Warnf("newsletter: %d of %d deliveries failed", failed, len(recipients))
	}
	return nil
}

// Package services содержит логику отправки писем кампаний,
// прочитанных из очереди брокера.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/mentor-platform/internal/lib/sl"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/smtp"
	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// SenderService отправляет письма кампаний по SMTP с ограничением темпа,
// чтобы не упираться в лимиты почтового провайдера.
type SenderService struct {
	transport smtp.TransportInterface
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
// ratePerSecond задаёт максимум писем в секунду.
func NewSenderService(transport smtp.TransportInterface, ratePerSecond float64, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		log:       log,
	}
}

// SendCampaignLetter разбирает письмо кампании из сообщения очереди
// и отправляет его адресату.
func (s *SenderService) SendCampaignLetter(ctx context.Context, body []byte) error {
	var letter models.CampaignLetter
	if err := json.Unmarshal(body, &letter); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\n%s", letter.Username, letter.Body)
	return s.sendEmail([]string{letter.Email}, letter.Subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}

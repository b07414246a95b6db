package gomail

import (
	"context"
	"crypto/tls"
	"fmt"
	"regexp"

	"gopkg.in/gomail.v2"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/pkg/config"
)

var htmlTag = regexp.MustCompile("<[^>]+>")

type Client struct {
	cfg    config.Mailer
	dialer *gomail.Dialer
}

func New(cfg config.Mailer) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	return &Client{
		cfg:    cfg,
		dialer: dialer,
	}
}

// SendNotification mails msg, falling back to the configured recipients.
func (c *Client) SendNotification(_ context.Context, msg entity.Message) error {
	recipients := msg.Recipients
	if len(recipients) == 0 {
		recipients = c.cfg.To
	}

	if len(recipients) == 0 {
		return fmt.Errorf("%w: no recipients for %q", entity.ErrIncorrectRequestBody, msg.Subject)
	}

	return c.dialer.DialAndSend(NewMessage(c.cfg.From, msg.Subject, msg.Message, recipients, msg.ContentType))
}

func NewMessage(from, subject, message string, recipients []string, contentType string) *gomail.Message {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetHeader("From", from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)

	switch contentType {
	case "text/html", "text/plain":
		msg.SetBody(contentType, message)
	default:
		if htmlTag.MatchString(message) {
			msg.SetBody("text/html", message)
		} else {
			msg.SetBody("text/plain", message)
		}
	}

	return msg
}

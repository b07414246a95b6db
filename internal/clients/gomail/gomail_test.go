package gomail_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/internal/clients/gomail"
	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/pkg/config"
)

func TestNewMessage(t *testing.T) {
	t.Parallel()

	msg := gomail.NewMessage("tracker@fcs.example", "Weekly Owner Digest", "Sarah Jenkins: 1 item(s)",
		[]string{"s.jenkins@firstcarbonsolutions.com"}, "")

	var buf bytes.Buffer

	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Subject: Weekly Owner Digest")
	require.Contains(t, out, "To: s.jenkins@firstcarbonsolutions.com")
	require.Contains(t, out, "Content-Type: text/plain; charset=UTF-8")
	require.Contains(t, strings.ReplaceAll(out, "\r\n", ""), base64.StdEncoding.EncodeToString([]byte("Sarah Jenkins: 1 item(s)")))

	html := gomail.NewMessage("a@b.c", "s", "<b>due</b>", []string{"x@y.z"}, "")
	buf.Reset()

	_, err = html.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Content-Type: text/html; charset=UTF-8")
}

func TestClient_SendNotificationWithoutRecipients(t *testing.T) {
	t.Parallel()

	c := gomail.New(config.Mailer{Host: "localhost", Port: 2525})

	err := c.SendNotification(context.Background(), entity.Message{Subject: "digest"})
	require.ErrorIs(t, err, entity.ErrIncorrectRequestBody)
}

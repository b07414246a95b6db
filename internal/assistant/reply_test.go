package assistant_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/compliance/internal/assistant"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

func TestFormatReply(t *testing.T) {
	t.Parallel()

	require.Equal(t, []entity.ReplyLine{
		{Text: "## Overdue"},
		{Text: "- C-102-A", Bullet: true},
		{Text: ""},
	}, assistant.FormatReply("## Overdue\n- C-102-A\n"))
}

func TestReply(t *testing.T) {
	t.Parallel()

	text, failed := assistant.Reply("", errors.New("dial tcp: timeout"))
	require.Equal(t, assistant.Apology, text)
	require.True(t, failed)

	text, failed = assistant.Reply("  \n", nil)
	require.Equal(t, assistant.EmptyReply, text)
	require.False(t, failed)

	text, failed = assistant.Reply("ok", nil)
	require.Equal(t, "ok", text)
	require.False(t, failed)
}

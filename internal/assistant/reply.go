package assistant

import (
	"strings"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

// FormatReply splits text into display lines; lines starting with "-" are bullets.
func FormatReply(text string) []entity.ReplyLine {
	raw := strings.Split(text, "\n")
	lines := make([]entity.ReplyLine, 0, len(raw))

	for _, line := range raw {
		lines = append(lines, entity.ReplyLine{
			Text:   line,
			Bullet: strings.HasPrefix(line, "-"),
		})
	}

	return lines
}

// Reply maps a provider outcome onto what the user sees. Errors become the
// apology and blank text becomes the fallback line.
func Reply(text string, err error) (string, bool) {
	if err != nil {
		return Apology, true
	}

	if strings.TrimSpace(text) == "" {
		return EmptyReply, false
	}

	return text, false
}

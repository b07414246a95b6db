package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const activityCapacity = 200

// activityLog keeps the most recent entries in a fixed ring.
type activityLog struct {
	mu      sync.Mutex
	entries []entity.ActivityEntry
	next    int
	full    bool
}

func newActivityLog(capacity int) *activityLog {
	return &activityLog{
		entries: make([]entity.ActivityEntry, capacity),
	}
}

func (l *activityLog) add(e entity.ActivityEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)

	if l.next == 0 {
		l.full = true
	}
}

// list returns the entries newest first.
func (l *activityLog) list() []entity.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.next
	if l.full {
		n = len(l.entries)
	}

	out := make([]entity.ActivityEntry, 0, n)

	for i := 1; i <= n; i++ {
		out = append(out, l.entries[(l.next-i+len(l.entries))%len(l.entries)])
	}

	return out
}

func (s *Service) Activity(_ context.Context) []entity.ActivityEntry {
	return s.activity.list()
}

func (s *Service) record(ctx context.Context, level entity.ActivityLevel, source, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	id, err := uuid.NewV7()
	if err != nil {
		slog.WarnContext(ctx, "activity id", "error", err)
	}

	s.activity.add(entity.ActivityEntry{
		ID:      id.String(),
		Time:    s.clock.Now().UTC().Truncate(time.Millisecond),
		Level:   level,
		Source:  source,
		Message: msg,
	})
}

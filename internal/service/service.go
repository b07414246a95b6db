package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/samandr77/microservices/compliance/internal/assistant"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

type Repository interface {
	Snapshot(ctx context.Context) (entity.Dataset, error)

	Permits(ctx context.Context) ([]entity.Permit, error)
	PermitByID(ctx context.Context, id string) (entity.Permit, error)
	CreatePermit(ctx context.Context, p entity.Permit) error
	UpdatePermit(ctx context.Context, p entity.Permit) error
	DeletePermit(ctx context.Context, id string) error

	Conditions(ctx context.Context) ([]entity.Condition, error)
	ConditionByID(ctx context.Context, id string) (entity.Condition, error)
	CreateCondition(ctx context.Context, c entity.Condition) error
	UpdateCondition(ctx context.Context, c entity.Condition) error
	SetConditionStatuses(ctx context.Context, changes []entity.StatusChange) (int, error)
	DeleteCondition(ctx context.Context, id string) error

	Evidence(ctx context.Context) ([]entity.Evidence, error)
	EvidenceByID(ctx context.Context, id string) (entity.Evidence, error)
	UpdateEvidence(ctx context.Context, e entity.Evidence) error
	DeleteEvidence(ctx context.Context, id string) error
	RecordEvidenceUpload(ctx context.Context, conditionID string, e entity.Evidence) (entity.Condition, error)

	Milestones(ctx context.Context) ([]entity.Milestone, error)

	Profile(ctx context.Context) (entity.UserProfile, error)
	UpdateProfile(ctx context.Context, p entity.UserProfile) error
	AlertSettings(ctx context.Context) (entity.AlertSettings, error)
	UpdateAlertSettings(ctx context.Context, a entity.AlertSettings) error
}

type Metrics interface {
	AssistantRequest(failed bool)
	EvidenceUploaded()
	JobRun(name string, err error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Config struct {
	// ReferenceDate pins "today" (YYYY-MM-DD). Empty means the clock decides.
	ReferenceDate   string
	AnalysisDelay   time.Duration
	AITimeout       time.Duration
	ContextMaxBytes int
	MaxSessions     int
	SessionTTL      time.Duration
	// DocumentHosts lists the hosts a permit document URL may point at.
	// Other documents must live in blob storage.
	DocumentHosts []string
}

type Service struct {
	repo      Repository
	blob      Blob
	fetcher   Fetcher
	provider  Provider
	notifier  Notifier
	publisher Publisher
	metrics   Metrics
	clock     Clock
	cfg       Config
	sessions  *assistant.Sessions
	activity  *activityLog
}

func New(
	repo Repository,
	blob Blob,
	fetcher Fetcher,
	provider Provider,
	notifier Notifier,
	publisher Publisher,
	metrics Metrics,
	clock Clock,
	cfg Config,
) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}

	if clock == nil {
		clock = SystemClock{}
	}

	if publisher == nil {
		publisher = nopPublisher{}
	}

	if notifier == nil {
		notifier = LogNotifier{}
	}

	return &Service{
		repo:      repo,
		blob:      blob,
		fetcher:   fetcher,
		provider:  provider,
		notifier:  notifier,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		cfg:       cfg,
		sessions:  assistant.NewSessions(cfg.MaxSessions, cfg.SessionTTL),
		activity:  newActivityLog(activityCapacity),
	}
}

// Today is the reference calendar date all date windows are computed against.
func (s *Service) Today() time.Time {
	if d, ok := entity.ParseDate(s.cfg.ReferenceDate); ok {
		return d
	}

	return entity.Truncate(s.clock.Now())
}

// currentUser names the acting person: the authenticated user, else the profile owner.
func (s *Service) currentUser(ctx context.Context) string {
	user, err := entity.UserFromContext(ctx)
	if err == nil && user.Name != "" {
		return user.Name
	}

	profile, err := s.repo.Profile(ctx)
	if err != nil {
		slog.WarnContext(ctx, "current user fallback", "error", err)
		return ""
	}

	return profile.Name
}

func (s *Service) publish(ctx context.Context, eventType entity.EventType, entityID string) {
	s.publisher.PublishEvent(ctx, entity.Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: s.clock.Now().UTC(),
		Actor:      s.currentUser(ctx),
	})
}

type nopMetrics struct{}

func (nopMetrics) AssistantRequest(bool) {}
func (nopMetrics) EvidenceUploaded()     {}
func (nopMetrics) JobRun(string, error)  {}

type nopPublisher struct{}

func (nopPublisher) PublishEvent(context.Context, entity.Event) {}

// LogNotifier writes notifications to the log when no delivery channel is configured.
type LogNotifier struct{}

func (LogNotifier) SendNotification(ctx context.Context, msg entity.Message) error {
	slog.InfoContext(ctx, "notification", "type", msg.Type, "subject", msg.Subject, "recipients", msg.Recipients)
	return nil
}

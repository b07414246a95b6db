package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

const (
	JobWeeklyDigest   = "weekly_digest"
	JobReminders      = "reminders"
	JobStatusRefresh  = "status_refresh"
	sourceJobs        = "jobs"
	notificationPlain = "text/plain"
)

// SendWeeklyDigest mails the weekly owner digest when both the alert and
// the profile preference allow it.
func (s *Service) SendWeeklyDigest(ctx context.Context) (err error) {
	defer func() { s.metrics.JobRun(JobWeeklyDigest, err) }()

	alerts, profile, err := s.notificationSettings(ctx)
	if err != nil {
		return err
	}

	if !alerts.WeeklyDigestActive() || !profile.Notifications.Digest {
		slog.DebugContext(ctx, "weekly digest disabled")
		return nil
	}

	report, err := s.Report(ctx, entity.ReportWeekly)
	if err != nil {
		return err
	}

	err = s.notifier.SendNotification(ctx, entity.Message{
		Type:        JobWeeklyDigest,
		Subject:     report.Title,
		Message:     compliance.DigestText(report),
		Recipients:  recipients(profile),
		ContentType: notificationPlain,
	})
	if err != nil {
		return fmt.Errorf("failed to send weekly digest: %w", err)
	}

	s.record(ctx, entity.ActivityInfo, sourceJobs, "Weekly digest sent with %d item(s)", len(report.Items))

	return nil
}

// SendReminders mails the 30 and 7 day reminders for conditions that are not
// compliant yet, each gated by its own toggle.
func (s *Service) SendReminders(ctx context.Context) (err error) {
	defer func() { s.metrics.JobRun(JobReminders, err) }()

	alerts, profile, err := s.notificationSettings(ctx)
	if err != nil {
		return err
	}

	if !profile.Notifications.Email {
		slog.DebugContext(ctx, "email reminders disabled")
		return nil
	}

	conditions, err := s.repo.Conditions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get conditions: %w", err)
	}

	windows := []struct {
		days   int
		active bool
	}{
		{days: compliance.DueSoonWindowDays, active: alerts.Remind30Active()},
		{days: compliance.AtRiskWindowDays, active: alerts.Remind7Active()},
	}

	today := s.Today()

	for _, w := range windows {
		if !w.active {
			continue
		}

		due := make([]entity.Condition, 0)

		for _, c := range conditions {
			if c.Status != entity.StatusCompliant && compliance.DueWithin(c, today, w.days) {
				due = append(due, c)
			}
		}

		if len(due) == 0 {
			continue
		}

		err = s.notifier.SendNotification(ctx, entity.Message{
			Type:        JobReminders,
			Subject:     fmt.Sprintf("%d condition(s) due within %d days", len(due), w.days),
			Message:     compliance.ReminderText(w.days, due),
			Recipients:  recipients(profile),
			ContentType: notificationPlain,
		})
		if err != nil {
			return fmt.Errorf("failed to send %d day reminder: %w", w.days, err)
		}

		s.record(ctx, entity.ActivityInfo, sourceJobs, "%d day reminder sent for %d condition(s)", w.days, len(due))
	}

	return nil
}

// RefreshStatuses moves conditions to the status their due date and
// evidence imply.
func (s *Service) RefreshStatuses(ctx context.Context) (err error) {
	defer func() { s.metrics.JobRun(JobStatusRefresh, err) }()

	conditions, err := s.repo.Conditions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get conditions: %w", err)
	}

	today := s.Today()

	var changes []entity.StatusChange

	for _, c := range conditions {
		if status := compliance.StatusFor(c, today); status != c.Status {
			changes = append(changes, entity.StatusChange{ID: c.ID, From: c.Status, To: status})
		}
	}

	if len(changes) == 0 {
		return nil
	}

	applied, err := s.repo.SetConditionStatuses(ctx, changes)
	if err != nil {
		return fmt.Errorf("failed to set condition statuses: %w", err)
	}

	if applied < len(changes) {
		slog.InfoContext(ctx, "conditions changed during status refresh", "skipped", len(changes)-applied)
	}

	if applied == 0 {
		return nil
	}

	slog.InfoContext(ctx, "condition statuses refreshed", "changed", applied)
	s.record(ctx, entity.ActivityInfo, sourceJobs, "%d condition status(es) refreshed", applied)
	s.publish(ctx, entity.EventStatusesRefreshed, "")

	return nil
}

func (s *Service) notificationSettings(ctx context.Context) (entity.AlertSettings, entity.UserProfile, error) {
	alerts, err := s.AlertSettings(ctx)
	if err != nil {
		return entity.AlertSettings{}, entity.UserProfile{}, err
	}

	profile, err := s.Profile(ctx)
	if err != nil {
		return entity.AlertSettings{}, entity.UserProfile{}, err
	}

	return alerts, profile, nil
}

// recipients is empty when the profile has no address; the notifier then
// falls back to its configured list.
func recipients(p entity.UserProfile) []string {
	if p.Email == "" {
		return nil
	}

	return []string{p.Email}
}

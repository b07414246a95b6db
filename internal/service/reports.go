package service

import (
	"context"
	"fmt"

	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

func (s *Service) Report(ctx context.Context, kind entity.ReportKind) (entity.Report, error) {
	if !kind.IsValid() {
		return entity.Report{}, fmt.Errorf("%w: unknown report %q", entity.ErrIncorrectRequestBody, kind)
	}

	conditions, err := s.repo.Conditions(ctx)
	if err != nil {
		return entity.Report{}, fmt.Errorf("failed to get conditions: %w", err)
	}

	return compliance.BuildReport(kind, conditions, s.Today()), nil
}

func (s *Service) ReportCSV(ctx context.Context, kind entity.ReportKind) (entity.ExportedFile, error) {
	report, err := s.Report(ctx, kind)
	if err != nil {
		return entity.ExportedFile{}, err
	}

	return entity.ExportedFile{
		Name:        compliance.ReportCSVName(kind, s.Today()),
		ContentType: compliance.CSVContentType,
		Data:        compliance.ConditionsCSV(report.Items),
	}, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/compliance"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

const sourcePermits = "permits"

// analyzedPermit is what document analysis extracts. The content itself is never parsed.
var analyzedPermit = struct {
	name, project, jurisdiction, permitType, effectiveDate, expirationDate string
}{
	name:           "NPDES Stormwater General Permit",
	project:        "North Creek Expansion",
	jurisdiction:   "State Water Resources Control Board",
	permitType:     "Water Quality",
	effectiveDate:  "2024-06-01",
	expirationDate: "2029-06-01",
}

func (s *Service) ListPermits(ctx context.Context, filter entity.PermitFilter) ([]entity.Permit, error) {
	permits, err := s.repo.Permits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get permits: %w", err)
	}

	return compliance.FilterPermits(permits, filter), nil
}

func (s *Service) Permit(ctx context.Context, id string) (entity.Permit, error) {
	p, err := s.repo.PermitByID(ctx, id)
	if err != nil {
		return entity.Permit{}, fmt.Errorf("failed to get permit %s: %w", id, err)
	}

	return p, nil
}

func (s *Service) CreatePermit(ctx context.Context, draft entity.PermitDraft) (entity.Permit, error) {
	p, err := draft.Build(entity.NewPermitID(), s.currentUser(ctx))
	if err != nil {
		return entity.Permit{}, err
	}

	err = s.checkDocumentHost(p.DocumentURL)
	if err != nil {
		return entity.Permit{}, err
	}

	err = s.repo.CreatePermit(ctx, p)
	if err != nil {
		return entity.Permit{}, fmt.Errorf("failed to create permit: %w", err)
	}

	slog.InfoContext(ctx, "permit created", "permit_id", p.ID)
	s.record(ctx, entity.ActivitySuccess, sourcePermits, "Permit %s (%s) created", p.ID, p.Name)
	s.publish(ctx, entity.EventPermitCreated, p.ID)

	return p, nil
}

func (s *Service) UpdatePermit(ctx context.Context, p entity.Permit) (entity.Permit, error) {
	err := ValidatePermit(p)
	if err != nil {
		return entity.Permit{}, err
	}

	err = s.checkDocumentHost(p.DocumentURL)
	if err != nil {
		return entity.Permit{}, err
	}

	err = s.repo.UpdatePermit(ctx, p)
	if err != nil {
		return entity.Permit{}, fmt.Errorf("failed to update permit %s: %w", p.ID, err)
	}

	s.record(ctx, entity.ActivityInfo, sourcePermits, "Permit %s updated", p.ID)
	s.publish(ctx, entity.EventPermitUpdated, p.ID)

	return p, nil
}

// DeletePermit removes the permit and its conditions. Nothing happens unless
// the caller confirmed the deletion.
func (s *Service) DeletePermit(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: deleting permit %s also deletes its conditions", entity.ErrConfirmationRequired, id)
	}

	err := s.repo.DeletePermit(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete permit %s: %w", id, err)
	}

	slog.InfoContext(ctx, "permit deleted", "permit_id", id)
	s.record(ctx, entity.ActivityWarn, sourcePermits, "Permit %s deleted with its conditions", id)
	s.publish(ctx, entity.EventPermitDeleted, id)

	return nil
}

func (s *Service) ExportPermitsCSV(ctx context.Context, filter entity.PermitFilter) (entity.ExportedFile, error) {
	permits, err := s.ListPermits(ctx, filter)
	if err != nil {
		return entity.ExportedFile{}, err
	}

	return entity.ExportedFile{
		Name:        compliance.PermitsCSVName(s.Today()),
		ContentType: compliance.CSVContentType,
		Data:        compliance.PermitsCSV(permits),
	}, nil
}

// PermitDocument returns the attached document: a stored file, a remote one,
// or the generated text record when nothing is attached.
func (s *Service) PermitDocument(ctx context.Context, id string) (entity.DownloadedFile, error) {
	p, err := s.Permit(ctx, id)
	if err != nil {
		return entity.DownloadedFile{}, err
	}

	if !p.HasDocument() {
		return entity.DownloadedFile{
			Name:        compliance.PermitRecordName(p),
			ContentType: compliance.TextContentType,
			Data:        compliance.PermitRecord(p, s.clock.Now()),
		}, nil
	}

	var file entity.DownloadedFile

	if key, ok := blob.KeyFromRef(p.DocumentURL); ok {
		file, err = s.blob.Get(ctx, key)
	} else if err = s.checkDocumentHost(p.DocumentURL); err == nil {
		file, err = s.fetcher.Fetch(ctx, p.DocumentURL)
	}

	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("failed to get document of permit %s: %w", id, err)
	}

	if p.DocumentName != "" {
		file.Name = p.DocumentName
	}

	return file, nil
}

// AnalyzeDocument stores an uploaded permit document and returns a draft
// prefilled from it once the analysis delay has passed.
func (s *Service) AnalyzeDocument(ctx context.Context, file entity.UploadedFile) (entity.PermitDraft, error) {
	err := ValidateFile(file, documentExtensions)
	if err != nil {
		return entity.PermitDraft{}, err
	}

	name := path.Base(file.Name)
	key := blob.DocumentKey(uuid.Must(uuid.NewV7()).String(), name)

	err = s.blob.Put(ctx, key, contentType(file), file.Data)
	if err != nil {
		return entity.PermitDraft{}, fmt.Errorf("failed to store document: %w", err)
	}

	timer := time.NewTimer(s.cfg.AnalysisDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		if delErr := s.blob.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			slog.WarnContext(ctx, "failed to remove abandoned document", "key", key, "error", delErr)
		}

		return entity.PermitDraft{}, fmt.Errorf("document analysis interrupted: %w", ctx.Err())
	case <-timer.C:
	}

	s.record(ctx, entity.ActivityInfo, sourcePermits, "Document %s analyzed", name)

	return entity.PermitDraft{
		Name:           entity.Ptr(analyzedPermit.name),
		Project:        entity.Ptr(analyzedPermit.project),
		Jurisdiction:   entity.Ptr(analyzedPermit.jurisdiction),
		Type:           entity.Ptr(analyzedPermit.permitType),
		EffectiveDate:  entity.Ptr(analyzedPermit.effectiveDate),
		ExpirationDate: entity.Ptr(analyzedPermit.expirationDate),
		Description:    entity.Ptr("Extracted from " + name),
		DocumentURL:    entity.Ptr(blob.Ref(key)),
		DocumentName:   entity.Ptr(name),
	}, nil
}

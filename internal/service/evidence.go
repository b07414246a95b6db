package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

const sourceEvidence = "evidence"

// EvidenceSubmission is an upload reported by another system. Only the
// metadata travels, the file stays where it was uploaded.
type EvidenceSubmission struct {
	ConditionID string   `json:"conditionId"`
	FileName    string   `json:"fileName"`
	UploadedBy  string   `json:"uploadedBy"`
	Tags        []string `json:"tags"`
}

func (s *Service) ListEvidence(ctx context.Context) ([]entity.Evidence, error) {
	evidence, err := s.repo.Evidence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}

	return evidence, nil
}

// UploadEvidence stores file for the condition and marks the condition
// compliant. The file content is kept as is and never inspected.
func (s *Service) UploadEvidence(
	ctx context.Context,
	conditionID string,
	file entity.UploadedFile,
	tags []string,
) (entity.Evidence, error) {
	err := ValidateFile(file, evidenceExtensions)
	if err != nil {
		return entity.Evidence{}, err
	}

	_, err = s.repo.ConditionByID(ctx, conditionID)
	if err != nil {
		return entity.Evidence{}, fmt.Errorf("failed to get condition %s: %w", conditionID, err)
	}

	e := entity.Evidence{
		ID:          entity.NewEvidenceID(),
		ConditionID: conditionID,
		FileName:    path.Base(file.Name),
		UploadedBy:  s.currentUser(ctx),
		UploadDate:  entity.FormatDate(s.Today()),
		Tags:        mergeTags(tags),
		ContentType: contentType(file),
		Size:        int64(len(file.Data)),
	}
	e.BlobKey = blob.EvidenceKey(e.ID, e.FileName)

	err = s.blob.Put(ctx, e.BlobKey, e.ContentType, file.Data)
	if err != nil {
		return entity.Evidence{}, fmt.Errorf("failed to store evidence file: %w", err)
	}

	err = s.recordUpload(ctx, e)
	if err != nil {
		if delErr := s.blob.Delete(context.WithoutCancel(ctx), e.BlobKey); delErr != nil {
			slog.WarnContext(ctx, "failed to remove orphaned evidence file", "key", e.BlobKey, "error", delErr)
		}

		return entity.Evidence{}, err
	}

	return e, nil
}

// SubmitEvidence records an upload that arrived without content.
func (s *Service) SubmitEvidence(ctx context.Context, sub EvidenceSubmission) (entity.Evidence, error) {
	if sub.ConditionID == "" || sub.FileName == "" {
		return entity.Evidence{}, fmt.Errorf("%w: conditionId and fileName are required", entity.ErrIncorrectRequestBody)
	}

	uploadedBy := sub.UploadedBy
	if uploadedBy == "" {
		uploadedBy = s.currentUser(ctx)
	}

	e := entity.Evidence{
		ID:          entity.NewEvidenceID(),
		ConditionID: sub.ConditionID,
		FileName:    path.Base(sub.FileName),
		UploadedBy:  uploadedBy,
		UploadDate:  entity.FormatDate(s.Today()),
		Tags:        mergeTags(sub.Tags),
	}

	err := s.recordUpload(ctx, e)
	if err != nil {
		return entity.Evidence{}, err
	}

	return e, nil
}

func (s *Service) recordUpload(ctx context.Context, e entity.Evidence) error {
	c, err := s.repo.RecordEvidenceUpload(ctx, e.ConditionID, e)
	if err != nil {
		return fmt.Errorf("failed to record evidence for condition %s: %w", e.ConditionID, err)
	}

	s.metrics.EvidenceUploaded()

	slog.InfoContext(ctx, "evidence uploaded", "evidence_id", e.ID, "condition_id", c.ID)
	s.record(ctx, entity.ActivitySuccess, sourceEvidence, "Evidence %s uploaded for condition %s, now %s", e.FileName, c.ID, c.Status)
	s.publish(ctx, entity.EventEvidenceUploaded, e.ID)

	return nil
}

func (s *Service) EvidenceFile(ctx context.Context, id string) (entity.DownloadedFile, error) {
	e, err := s.repo.EvidenceByID(ctx, id)
	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("failed to get evidence %s: %w", id, err)
	}

	if !e.HasFile() {
		return entity.DownloadedFile{}, fmt.Errorf("%w: evidence %s has no stored file", entity.ErrNotFound, id)
	}

	file, err := s.blob.Get(ctx, e.BlobKey)
	if err != nil {
		return entity.DownloadedFile{}, fmt.Errorf("failed to get evidence file %s: %w", id, err)
	}

	file.Name = e.FileName

	return file, nil
}

// UpdateEvidence changes the file name and tags of an evidence record. The
// remaining fields keep their stored values.
func (s *Service) UpdateEvidence(ctx context.Context, id, fileName string, tags []string) (entity.Evidence, error) {
	e, err := s.repo.EvidenceByID(ctx, id)
	if err != nil {
		return entity.Evidence{}, fmt.Errorf("failed to get evidence %s: %w", id, err)
	}

	e.FileName = strings.TrimSpace(fileName)
	if e.FileName != "" {
		e.FileName = path.Base(e.FileName)
	}

	if tags != nil {
		e.Tags = tags
	}

	err = ValidateEvidence(e)
	if err != nil {
		return entity.Evidence{}, err
	}

	err = s.repo.UpdateEvidence(ctx, e)
	if err != nil {
		return entity.Evidence{}, fmt.Errorf("failed to update evidence %s: %w", id, err)
	}

	s.record(ctx, entity.ActivityInfo, sourceEvidence, "Evidence %s updated", id)

	return e, nil
}

func (s *Service) DeleteEvidence(ctx context.Context, id string) error {
	e, err := s.repo.EvidenceByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get evidence %s: %w", id, err)
	}

	err = s.repo.DeleteEvidence(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete evidence %s: %w", id, err)
	}

	if e.HasFile() {
		err = s.blob.Delete(ctx, e.BlobKey)
		if err != nil {
			slog.WarnContext(ctx, "failed to delete evidence file", "key", e.BlobKey, "error", err)
		}
	}

	s.record(ctx, entity.ActivityWarn, sourceEvidence, "Evidence %s deleted", id)
	s.publish(ctx, entity.EventEvidenceDeleted, id)

	return nil
}

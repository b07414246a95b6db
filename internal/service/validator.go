package service

import (
	"fmt"
	"mime"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/entity"
)

var (
	evidenceExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"}
	documentExtensions = []string{".pdf", ".doc", ".docx"}
)

func ValidateFile(file entity.UploadedFile, allowed []string) error {
	if strings.TrimSpace(file.Name) == "" {
		return fmt.Errorf("%w: file name is required", entity.ErrIncorrectRequestBody)
	}

	ext := strings.ToLower(path.Ext(file.Name))
	if !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: %q, accepted: %s", entity.ErrUnsupportedFile, file.Name, strings.Join(allowed, " "))
	}

	return nil
}

func ValidatePermit(p entity.Permit) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", entity.ErrIncorrectRequestBody)
	}

	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Project) == "" {
		return fmt.Errorf("%w: name and project are required", entity.ErrIncorrectRequestBody)
	}

	if !p.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", entity.ErrIncorrectRequestBody, p.Status)
	}

	return entity.CheckDocumentURL(p.DocumentURL)
}

// checkDocumentHost lets remote document URLs through only for the configured
// hosts. Everything else has to be uploaded into blob storage.
func (s *Service) checkDocumentHost(raw string) error {
	if raw == "" {
		return nil
	}

	if _, ok := blob.KeyFromRef(raw); ok {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid document url", entity.ErrIncorrectRequestBody)
	}

	host := strings.ToLower(u.Hostname())
	if !slices.ContainsFunc(s.cfg.DocumentHosts, func(h string) bool { return strings.EqualFold(h, host) }) {
		return fmt.Errorf("%w: document host %q is not allowed, upload the file instead", entity.ErrIncorrectRequestBody, host)
	}

	return nil
}

func ValidateCondition(c entity.Condition) error {
	if c.ID == "" || c.PermitID == "" {
		return fmt.Errorf("%w: id and permitId are required", entity.ErrIncorrectRequestBody)
	}

	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: description is required", entity.ErrIncorrectRequestBody)
	}

	if !c.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", entity.ErrIncorrectRequestBody, c.Status)
	}

	if !c.RiskLevel.IsValid() {
		return fmt.Errorf("%w: invalid risk level %q", entity.ErrIncorrectRequestBody, c.RiskLevel)
	}

	return nil
}

func ValidateEvidence(e entity.Evidence) error {
	if e.ID == "" || strings.TrimSpace(e.FileName) == "" {
		return fmt.Errorf("%w: id and fileName are required", entity.ErrIncorrectRequestBody)
	}

	return nil
}

// contentType falls back to the extension when the client sent nothing useful.
func contentType(file entity.UploadedFile) string {
	if file.ContentType != "" && file.ContentType != "application/octet-stream" {
		return file.ContentType
	}

	if t := mime.TypeByExtension(strings.ToLower(path.Ext(file.Name))); t != "" {
		return t
	}

	return "application/octet-stream"
}

// mergeTags returns the default evidence tags followed by the unique, non-blank extra tags.
func mergeTags(extra []string) []string {
	tags := slices.Clone(entity.DefaultEvidenceTags)

	for _, t := range extra {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(tags, t) {
			continue
		}

		tags = append(tags, t)
	}

	return tags
}

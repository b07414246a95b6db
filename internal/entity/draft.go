package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultJurisdiction   = "Agency"
	DefaultPermitType     = "General"
	DefaultEffectiveDate  = "2024-01-01"
	DefaultExpirationDate = "2025-01-01"
)

// PermitDraft is a permit being composed field by field before submission.
type PermitDraft struct {
	Name           *string `json:"name,omitempty"`
	Project        *string `json:"project,omitempty"`
	Jurisdiction   *string `json:"jurisdiction,omitempty"`
	Type           *string `json:"type,omitempty"`
	EffectiveDate  *string `json:"effectiveDate,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
	Owner          *string `json:"owner,omitempty"`
	Status         *Status `json:"status,omitempty"`
	Description    *string `json:"description,omitempty"`
	DocumentURL    *string `json:"documentUrl,omitempty"`
	DocumentName   *string `json:"documentName,omitempty"`
}

func (d PermitDraft) Validate() error {
	if strings.TrimSpace(deref(d.Name)) == "" {
		return fmt.Errorf("%w: name is required", ErrIncorrectRequestBody)
	}

	if strings.TrimSpace(deref(d.Project)) == "" {
		return fmt.Errorf("%w: project is required", ErrIncorrectRequestBody)
	}

	if d.Status != nil && !d.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrIncorrectRequestBody, *d.Status)
	}

	return CheckDocumentURL(deref(d.DocumentURL))
}

// Build validates the draft and fills the unset fields with defaults.
func (d PermitDraft) Build(id, owner string) (Permit, error) {
	err := d.Validate()
	if err != nil {
		return Permit{}, err
	}

	return Permit{
		ID:             id,
		Project:        deref(d.Project),
		Name:           deref(d.Name),
		Jurisdiction:   or(d.Jurisdiction, DefaultJurisdiction),
		Type:           or(d.Type, DefaultPermitType),
		EffectiveDate:  or(d.EffectiveDate, DefaultEffectiveDate),
		ExpirationDate: or(d.ExpirationDate, DefaultExpirationDate),
		Owner:          or(d.Owner, owner),
		Status:         orStatus(d.Status, StatusPending),
		Description:    deref(d.Description),
		DocumentURL:    deref(d.DocumentURL),
		DocumentName:   deref(d.DocumentName),
	}, nil
}

// ConditionDraft is a condition being composed field by field before submission.
type ConditionDraft struct {
	PermitID         *string    `json:"permitId,omitempty"`
	Description      *string    `json:"description,omitempty"`
	DueDate          *string    `json:"dueDate,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	RiskLevel        *RiskLevel `json:"riskLevel,omitempty"`
	EvidenceRequired *bool      `json:"evidenceRequired,omitempty"`
	Owner            *string    `json:"owner,omitempty"`
}

func (d ConditionDraft) Validate() error {
	if strings.TrimSpace(deref(d.Description)) == "" {
		return fmt.Errorf("%w: description is required", ErrIncorrectRequestBody)
	}

	if d.Status != nil && !d.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrIncorrectRequestBody, *d.Status)
	}

	if d.RiskLevel != nil && !d.RiskLevel.IsValid() {
		return fmt.Errorf("%w: invalid risk level %q", ErrIncorrectRequestBody, *d.RiskLevel)
	}

	return nil
}

// UnassignedOwner is the owner of a condition created without one.
const UnassignedOwner = "Unassigned"

// Build validates the draft and fills the unset fields. defaultPermitID is
// used when the draft names no permit.
func (d ConditionDraft) Build(id, defaultPermitID string, today time.Time) (Condition, error) {
	err := d.Validate()
	if err != nil {
		return Condition{}, err
	}

	evidenceRequired := true
	if d.EvidenceRequired != nil {
		evidenceRequired = *d.EvidenceRequired
	}

	riskLevel := RiskLow
	if d.RiskLevel != nil {
		riskLevel = *d.RiskLevel
	}

	return Condition{
		ID:               id,
		PermitID:         or(d.PermitID, defaultPermitID),
		Description:      deref(d.Description),
		DueDate:          or(d.DueDate, FormatDate(today)),
		Status:           orStatus(d.Status, StatusPending),
		RiskLevel:        riskLevel,
		EvidenceRequired: evidenceRequired,
		EvidenceUploaded: false,
		Owner:            or(d.Owner, UnassignedOwner),
	}, nil
}

func Ptr[T any](v T) *T {
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func or(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}

	return *s
}

func orStatus(s *Status, def Status) Status {
	if s == nil || *s == "" {
		return def
	}

	return *s
}

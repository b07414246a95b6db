package entity

type Condition struct {
	ID               string    `json:"id" yaml:"id"`
	PermitID         string    `json:"permitId" yaml:"permitId"`
	Description      string    `json:"description" yaml:"description"`
	DueDate          string    `json:"dueDate" yaml:"dueDate"`
	Status           Status    `json:"status" yaml:"status"`
	RiskLevel        RiskLevel `json:"riskLevel" yaml:"riskLevel"`
	EvidenceRequired bool      `json:"evidenceRequired" yaml:"evidenceRequired"`
	EvidenceUploaded bool      `json:"evidenceUploaded" yaml:"evidenceUploaded"`
	Owner            string    `json:"owner" yaml:"owner"`
}

// MissingEvidence is true for conditions that need evidence nobody uploaded yet.
func (c Condition) MissingEvidence() bool {
	return c.EvidenceRequired && !c.EvidenceUploaded
}

// MarkEvidenceUploaded applies the fixed side effects of an evidence upload.
func (c Condition) MarkEvidenceUploaded() Condition {
	c.EvidenceUploaded = true
	c.Status = StatusCompliant
	c.RiskLevel = RiskLow

	return c
}

// StatusChange moves a condition from one status to another. It only applies
// while the condition still has status From and no uploaded evidence.
type StatusChange struct {
	ID   string
	From Status
	To   Status
}

func (sc StatusChange) AppliesTo(c Condition) bool {
	return c.ID == sc.ID && c.Status == sc.From && !c.EvidenceUploaded
}

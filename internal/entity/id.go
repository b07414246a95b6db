package entity

import "github.com/gofrs/uuid/v5"

const (
	PermitIDPrefix    = "P-"
	ConditionIDPrefix = "C-"
	EvidenceIDPrefix  = "E-"
)

func NewPermitID() string {
	return newID(PermitIDPrefix)
}

func NewConditionID() string {
	return newID(ConditionIDPrefix)
}

func NewEvidenceID() string {
	return newID(EvidenceIDPrefix)
}

func newID(prefix string) string {
	return prefix + uuid.Must(uuid.NewV7()).String()
}

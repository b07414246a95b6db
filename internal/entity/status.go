package entity

type Status string

const (
	StatusOnTrack   Status = "On Track"
	StatusAtRisk    Status = "At Risk"
	StatusOverdue   Status = "Overdue"
	StatusCompliant Status = "Compliant"
	StatusPending   Status = "Pending"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOnTrack, StatusAtRisk, StatusOverdue, StatusCompliant, StatusPending:
		return true
	default:
		return false
	}
}

func Statuses() []Status {
	return []Status{StatusOnTrack, StatusAtRisk, StatusOverdue, StatusCompliant, StatusPending}
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) String() string {
	return string(r)
}

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

package entity

type Dataset struct {
	Permits    []Permit      `json:"permits" yaml:"permits"`
	Conditions []Condition   `json:"conditions" yaml:"conditions"`
	Evidence   []Evidence    `json:"evidence" yaml:"evidence"`
	Milestones []Milestone   `json:"milestones" yaml:"milestones"`
	Profile    UserProfile   `json:"profile" yaml:"profile"`
	Alerts     AlertSettings `json:"alerts" yaml:"alerts"`
}

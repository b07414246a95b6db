package entity

type Milestone struct {
	ID       string `json:"id" yaml:"id"`
	PermitID string `json:"permitId" yaml:"permitId"`
	Name     string `json:"name" yaml:"name"`
	DueDate  string `json:"dueDate" yaml:"dueDate"`
	Status   Status `json:"status" yaml:"status"`
}

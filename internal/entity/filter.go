package entity

const FilterAll = "All"

type PermitFilter struct {
	Status  string `json:"status"`
	Owner   string `json:"owner"`
	Project string `json:"project"`
}

func (f PermitFilter) Match(p Permit) bool {
	return matches(f.Status, string(p.Status)) &&
		matches(f.Owner, p.Owner) &&
		matches(f.Project, p.Project)
}

func (f PermitFilter) IsZero() bool {
	return isUnset(f.Status) && isUnset(f.Owner) && isUnset(f.Project)
}

type FilterOptions struct {
	Statuses []Status `json:"statuses"`
	Owners   []string `json:"owners"`
	Projects []string `json:"projects"`
}

func matches(want, got string) bool {
	return isUnset(want) || want == got
}

func isUnset(v string) bool {
	return v == "" || v == FilterAll
}

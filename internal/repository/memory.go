package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

// Memory is the in-process state container. Every mutation swaps in a new
// slice under the write lock, so a reader holding an old slice never sees it change.
type Memory struct {
	mu   sync.RWMutex
	data entity.Dataset
}

func NewMemory(d entity.Dataset) *Memory {
	return &Memory{data: cloneDataset(d)}
}

func (m *Memory) Snapshot(_ context.Context) (entity.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneDataset(m.data), nil
}

func (m *Memory) Permits(_ context.Context) ([]entity.Permit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clone(m.data.Permits), nil
}

func (m *Memory) PermitByID(_ context.Context, id string) (entity.Permit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.data.Permits, func(p entity.Permit) bool { return p.ID == id })
	if i < 0 {
		return entity.Permit{}, fmt.Errorf("permit %s: %w", id, entity.ErrNotFound)
	}

	return m.data.Permits[i], nil
}

func (m *Memory) CreatePermit(_ context.Context, p entity.Permit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.ContainsFunc(m.data.Permits, func(v entity.Permit) bool { return v.ID == p.ID }) {
		return fmt.Errorf("permit %s: %w", p.ID, entity.ErrAlreadyExists)
	}

	m.data.Permits = prepend(m.data.Permits, p)

	return nil
}

func (m *Memory) UpdatePermit(_ context.Context, p entity.Permit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	permits, ok := replace(m.data.Permits, p, func(v entity.Permit) bool { return v.ID == p.ID })
	if !ok {
		return fmt.Errorf("permit %s: %w", p.ID, entity.ErrNotFound)
	}

	m.data.Permits = permits

	return nil
}

// DeletePermit drops the permit together with its conditions. Evidence is kept.
func (m *Memory) DeletePermit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	permits := without(m.data.Permits, func(p entity.Permit) bool { return p.ID == id })
	if len(permits) == len(m.data.Permits) {
		return fmt.Errorf("permit %s: %w", id, entity.ErrNotFound)
	}

	m.data.Permits = permits
	m.data.Conditions = without(m.data.Conditions, func(c entity.Condition) bool { return c.PermitID == id })

	return nil
}

func (m *Memory) Conditions(_ context.Context) ([]entity.Condition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clone(m.data.Conditions), nil
}

func (m *Memory) ConditionByID(_ context.Context, id string) (entity.Condition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.data.Conditions, func(c entity.Condition) bool { return c.ID == id })
	if i < 0 {
		return entity.Condition{}, fmt.Errorf("condition %s: %w", id, entity.ErrNotFound)
	}

	return m.data.Conditions[i], nil
}

func (m *Memory) CreateCondition(_ context.Context, c entity.Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.ContainsFunc(m.data.Conditions, func(v entity.Condition) bool { return v.ID == c.ID }) {
		return fmt.Errorf("condition %s: %w", c.ID, entity.ErrAlreadyExists)
	}

	m.data.Conditions = prepend(m.data.Conditions, c)

	return nil
}

// UpdateCondition replaces the condition but keeps its stored EvidenceUploaded flag.
func (m *Memory) UpdateCondition(_ context.Context, c entity.Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.data.Conditions, func(v entity.Condition) bool { return v.ID == c.ID })
	if i < 0 {
		return fmt.Errorf("condition %s: %w", c.ID, entity.ErrNotFound)
	}

	c.EvidenceUploaded = m.data.Conditions[i].EvidenceUploaded

	conditions := clone(m.data.Conditions)
	conditions[i] = c
	m.data.Conditions = conditions

	return nil
}

// SetConditionStatuses applies the changes whose condition is unchanged since
// they were computed and returns how many were applied.
func (m *Memory) SetConditionStatuses(_ context.Context, changes []entity.StatusChange) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[string]entity.StatusChange, len(changes))
	for _, sc := range changes {
		byID[sc.ID] = sc
	}

	conditions := clone(m.data.Conditions)
	applied := 0

	for i, c := range conditions {
		sc, ok := byID[c.ID]
		if !ok || !sc.AppliesTo(c) {
			continue
		}

		conditions[i].Status = sc.To
		applied++
	}

	m.data.Conditions = conditions

	return applied, nil
}

func (m *Memory) DeleteCondition(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conditions := without(m.data.Conditions, func(c entity.Condition) bool { return c.ID == id })
	if len(conditions) == len(m.data.Conditions) {
		return fmt.Errorf("condition %s: %w", id, entity.ErrNotFound)
	}

	m.data.Conditions = conditions

	return nil
}

func (m *Memory) Evidence(_ context.Context) ([]entity.Evidence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneEvidence(m.data.Evidence), nil
}

func (m *Memory) EvidenceByID(_ context.Context, id string) (entity.Evidence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.data.Evidence, func(e entity.Evidence) bool { return e.ID == id })
	if i < 0 {
		return entity.Evidence{}, fmt.Errorf("evidence %s: %w", id, entity.ErrNotFound)
	}

	e := m.data.Evidence[i]
	e.Tags = clone(e.Tags)

	return e, nil
}

func (m *Memory) UpdateEvidence(_ context.Context, e entity.Evidence) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.Tags = clone(e.Tags)

	evidence, ok := replace(m.data.Evidence, e, func(v entity.Evidence) bool { return v.ID == e.ID })
	if !ok {
		return fmt.Errorf("evidence %s: %w", e.ID, entity.ErrNotFound)
	}

	m.data.Evidence = evidence

	return nil
}

func (m *Memory) DeleteEvidence(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	evidence := without(m.data.Evidence, func(e entity.Evidence) bool { return e.ID == id })
	if len(evidence) == len(m.data.Evidence) {
		return fmt.Errorf("evidence %s: %w", id, entity.ErrNotFound)
	}

	m.data.Evidence = evidence

	return nil
}

// RecordEvidenceUpload marks the condition as evidenced and prepends e in one step.
func (m *Memory) RecordEvidenceUpload(_ context.Context, conditionID string, e entity.Evidence) (entity.Condition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.data.Conditions, func(c entity.Condition) bool { return c.ID == conditionID })
	if i < 0 {
		return entity.Condition{}, fmt.Errorf("condition %s: %w", conditionID, entity.ErrNotFound)
	}

	if slices.ContainsFunc(m.data.Evidence, func(v entity.Evidence) bool { return v.ID == e.ID }) {
		return entity.Condition{}, fmt.Errorf("evidence %s: %w", e.ID, entity.ErrAlreadyExists)
	}

	updated := m.data.Conditions[i].MarkEvidenceUploaded()

	conditions := clone(m.data.Conditions)
	conditions[i] = updated

	e.ConditionID = conditionID
	e.Tags = clone(e.Tags)

	m.data.Conditions = conditions
	m.data.Evidence = prepend(m.data.Evidence, e)

	return updated, nil
}

func (m *Memory) Milestones(_ context.Context) ([]entity.Milestone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return clone(m.data.Milestones), nil
}

func (m *Memory) Profile(_ context.Context) (entity.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data.Profile, nil
}

func (m *Memory) UpdateProfile(_ context.Context, p entity.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.Profile = p

	return nil
}

func (m *Memory) AlertSettings(_ context.Context) (entity.AlertSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.data.Alerts, nil
}

func (m *Memory) UpdateAlertSettings(_ context.Context, a entity.AlertSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data.Alerts = a

	return nil
}

func prepend[T any](items []T, v T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, v)

	return append(out, items...)
}

func replace[T any](items []T, v T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return items, false
	}

	out := clone(items)
	out[i] = v

	return out, true
}

func without[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, v := range items {
		if !drop(v) {
			out = append(out, v)
		}
	}

	return out
}

func cloneEvidence(items []entity.Evidence) []entity.Evidence {
	out := clone(items)
	for i := range out {
		out[i].Tags = clone(out[i].Tags)
	}

	return out
}

func cloneDataset(d entity.Dataset) entity.Dataset {
	return entity.Dataset{
		Permits:    clone(d.Permits),
		Conditions: clone(d.Conditions),
		Evidence:   cloneEvidence(d.Evidence),
		Milestones: clone(d.Milestones),
		Profile:    d.Profile,
		Alerts:     d.Alerts,
	}
}

// clone never returns nil so empty collections encode as [].
func clone[T any](items []T) []T {
	return append(make([]T, 0, len(items)), items...)
}

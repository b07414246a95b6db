package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	permitColumns = []string{
		"id", "project", "name", "jurisdiction", "type", "effective_date", "expiration_date",
		"owner", "status", "description", "document_url", "document_name",
	}
	conditionColumns = []string{
		"id", "permit_id", "description", "due_date", "status", "risk_level",
		"evidence_required", "evidence_uploaded", "owner",
	}
	evidenceColumns = []string{
		"id", "condition_id", "file_name", "uploaded_by", "upload_date", "tags", "content_type", "size", "blob_key",
	}
	milestoneColumns = []string{"id", "permit_id", "name", "due_date", "status"}
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Seed loads d when the database holds no permits and no settings yet.
func (r *Repository) Seed(ctx context.Context, d entity.Dataset) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM settings) OR EXISTS (SELECT 1 FROM permits)`).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check seed: %w", err)
		}

		if exists {
			return nil
		}

		for i, p := range d.Permits {
			err = insertPermit(ctx, tx, p, int64(i))
			if err != nil {
				return err
			}
		}

		for i, c := range d.Conditions {
			err = insertCondition(ctx, tx, c, int64(i))
			if err != nil {
				return err
			}
		}

		for i, e := range d.Evidence {
			err = insertEvidence(ctx, tx, e, int64(i))
			if err != nil {
				return err
			}
		}

		for i, m := range d.Milestones {
			query, args, err := psql.Insert("milestones").
				Columns(append(milestoneColumns, "position")...).
				Values(m.ID, m.PermitID, m.Name, m.DueDate, m.Status, int64(i)).
				ToSql()
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("insert milestone %s: %w", m.ID, err)
			}
		}

		_, err = tx.Exec(ctx, `INSERT INTO settings (id, profile, alerts) VALUES (1, $1, $2)`, d.Profile, d.Alerts)
		if err != nil {
			return fmt.Errorf("insert settings: %w", err)
		}

		return nil
	})
}

func (r *Repository) Snapshot(ctx context.Context) (entity.Dataset, error) {
	var d entity.Dataset

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error

		d.Permits, err = selectPermits(ctx, tx, nil)
		if err != nil {
			return err
		}

		d.Conditions, err = selectConditions(ctx, tx, nil)
		if err != nil {
			return err
		}

		d.Evidence, err = selectEvidence(ctx, tx, nil)
		if err != nil {
			return err
		}

		d.Milestones, err = selectMilestones(ctx, tx)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `SELECT profile, alerts FROM settings WHERE id = 1`).Scan(&d.Profile, &d.Alerts)
	})
	if err != nil {
		return entity.Dataset{}, err
	}

	return d, nil
}

func (r *Repository) Permits(ctx context.Context) ([]entity.Permit, error) {
	return selectPermits(ctx, r.db, nil)
}

func (r *Repository) PermitByID(ctx context.Context, id string) (entity.Permit, error) {
	permits, err := selectPermits(ctx, r.db, sq.Eq{"id": id})
	if err != nil {
		return entity.Permit{}, err
	}

	if len(permits) == 0 {
		return entity.Permit{}, fmt.Errorf("permit %s: %w", id, entity.ErrNotFound)
	}

	return permits[0], nil
}

func (r *Repository) CreatePermit(ctx context.Context, p entity.Permit) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		position, err := frontPosition(ctx, tx, "permits")
		if err != nil {
			return err
		}

		return insertPermit(ctx, tx, p, position)
	})
}

func (r *Repository) UpdatePermit(ctx context.Context, p entity.Permit) error {
	query, args, err := psql.Update("permits").
		SetMap(map[string]any{
			"project":         p.Project,
			"name":            p.Name,
			"jurisdiction":    p.Jurisdiction,
			"type":            p.Type,
			"effective_date":  p.EffectiveDate,
			"expiration_date": p.ExpirationDate,
			"owner":           p.Owner,
			"status":          p.Status,
			"description":     p.Description,
			"document_url":    p.DocumentURL,
			"document_name":   p.DocumentName,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update permit %s: %w", p.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("permit %s: %w", p.ID, entity.ErrNotFound)
	}

	return nil
}

func (r *Repository) DeletePermit(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM permits WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete permit %s: %w", id, err)
		}

		if tag.RowsAffected() == 0 {
			return fmt.Errorf("permit %s: %w", id, entity.ErrNotFound)
		}

		_, err = tx.Exec(ctx, `DELETE FROM conditions WHERE permit_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete conditions of %s: %w", id, err)
		}

		return nil
	})
}

func (r *Repository) Conditions(ctx context.Context) ([]entity.Condition, error) {
	return selectConditions(ctx, r.db, nil)
}

func (r *Repository) ConditionByID(ctx context.Context, id string) (entity.Condition, error) {
	return conditionByID(ctx, r.db, id)
}

func (r *Repository) CreateCondition(ctx context.Context, c entity.Condition) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		position, err := frontPosition(ctx, tx, "conditions")
		if err != nil {
			return err
		}

		return insertCondition(ctx, tx, c, position)
	})
}

func (r *Repository) UpdateCondition(ctx context.Context, c entity.Condition) error {
	query, args, err := psql.Update("conditions").
		SetMap(map[string]any{
			"permit_id":         c.PermitID,
			"description":       c.Description,
			"due_date":          c.DueDate,
			"status":            c.Status,
			"risk_level":        c.RiskLevel,
			"evidence_required": c.EvidenceRequired,
			"owner":             c.Owner,
		}).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update condition %s: %w", c.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("condition %s: %w", c.ID, entity.ErrNotFound)
	}

	return nil
}

// SetConditionStatuses applies the changes whose condition is unchanged since
// they were computed and returns how many were applied.
func (r *Repository) SetConditionStatuses(ctx context.Context, changes []entity.StatusChange) (int, error) {
	applied := 0

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		for _, sc := range changes {
			tag, err := tx.Exec(ctx,
				`UPDATE conditions SET status = $1 WHERE id = $2 AND status = $3 AND NOT evidence_uploaded`,
				sc.To, sc.ID, sc.From)
			if err != nil {
				return fmt.Errorf("update status of %s: %w", sc.ID, err)
			}

			applied += int(tag.RowsAffected())
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return applied, nil
}

func (r *Repository) DeleteCondition(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM conditions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete condition %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("condition %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *Repository) Evidence(ctx context.Context) ([]entity.Evidence, error) {
	return selectEvidence(ctx, r.db, nil)
}

func (r *Repository) EvidenceByID(ctx context.Context, id string) (entity.Evidence, error) {
	evidence, err := selectEvidence(ctx, r.db, sq.Eq{"id": id})
	if err != nil {
		return entity.Evidence{}, err
	}

	if len(evidence) == 0 {
		return entity.Evidence{}, fmt.Errorf("evidence %s: %w", id, entity.ErrNotFound)
	}

	return evidence[0], nil
}

func (r *Repository) UpdateEvidence(ctx context.Context, e entity.Evidence) error {
	query, args, err := psql.Update("evidence").
		SetMap(map[string]any{
			"condition_id": e.ConditionID,
			"file_name":    e.FileName,
			"uploaded_by":  e.UploadedBy,
			"upload_date":  e.UploadDate,
			"tags":         tags(e.Tags),
			"content_type": e.ContentType,
			"size":         e.Size,
			"blob_key":     e.BlobKey,
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update evidence %s: %w", e.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("evidence %s: %w", e.ID, entity.ErrNotFound)
	}

	return nil
}

func (r *Repository) DeleteEvidence(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM evidence WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evidence %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("evidence %s: %w", id, entity.ErrNotFound)
	}

	return nil
}

func (r *Repository) RecordEvidenceUpload(ctx context.Context, conditionID string, e entity.Evidence) (entity.Condition, error) {
	var updated entity.Condition

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		c, err := conditionByID(ctx, tx, conditionID)
		if err != nil {
			return err
		}

		updated = c.MarkEvidenceUploaded()

		_, err = tx.Exec(ctx,
			`UPDATE conditions SET evidence_uploaded = $1, status = $2, risk_level = $3 WHERE id = $4`,
			updated.EvidenceUploaded, updated.Status, updated.RiskLevel, conditionID)
		if err != nil {
			return fmt.Errorf("mark condition %s: %w", conditionID, err)
		}

		position, err := frontPosition(ctx, tx, "evidence")
		if err != nil {
			return err
		}

		e.ConditionID = conditionID

		return insertEvidence(ctx, tx, e, position)
	})
	if err != nil {
		return entity.Condition{}, err
	}

	return updated, nil
}

func (r *Repository) Milestones(ctx context.Context) ([]entity.Milestone, error) {
	return selectMilestones(ctx, r.db)
}

func (r *Repository) Profile(ctx context.Context) (entity.UserProfile, error) {
	var p entity.UserProfile

	err := r.db.QueryRow(ctx, `SELECT profile FROM settings WHERE id = 1`).Scan(&p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.UserProfile{}, fmt.Errorf("profile: %w", entity.ErrNotFound)
		}

		return entity.UserProfile{}, err
	}

	return p, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, p entity.UserProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO settings (id, profile, alerts) VALUES (1, $1, '{}')
		ON CONFLICT (id) DO UPDATE SET profile = EXCLUDED.profile`, p)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *Repository) AlertSettings(ctx context.Context) (entity.AlertSettings, error) {
	var a entity.AlertSettings

	err := r.db.QueryRow(ctx, `SELECT alerts FROM settings WHERE id = 1`).Scan(&a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.AlertSettings{}, fmt.Errorf("alert settings: %w", entity.ErrNotFound)
		}

		return entity.AlertSettings{}, err
	}

	return a, nil
}

func (r *Repository) UpdateAlertSettings(ctx context.Context, a entity.AlertSettings) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO settings (id, profile, alerts) VALUES (1, '{}', $1)
		ON CONFLICT (id) DO UPDATE SET alerts = EXCLUDED.alerts`, a)
	if err != nil {
		return fmt.Errorf("update alert settings: %w", err)
	}

	return nil
}

func (r *Repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = fn(tx)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// frontPosition returns a position that sorts before every existing row.
func frontPosition(ctx context.Context, q querier, table string) (int64, error) {
	var position int64

	err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COALESCE(MIN(position), 0) - 1 FROM %s`, table)).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("front position of %s: %w", table, err)
	}

	return position, nil
}

func insertPermit(ctx context.Context, q querier, p entity.Permit, position int64) error {
	query, args, err := psql.Insert("permits").
		Columns(append(permitColumns, "position")...).
		Values(p.ID, p.Project, p.Name, p.Jurisdiction, p.Type, p.EffectiveDate, p.ExpirationDate,
			p.Owner, p.Status, p.Description, p.DocumentURL, p.DocumentName, position).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, query, args...)
	if err != nil {
		return insertErr("permit", p.ID, err)
	}

	return nil
}

func insertCondition(ctx context.Context, q querier, c entity.Condition, position int64) error {
	query, args, err := psql.Insert("conditions").
		Columns(append(conditionColumns, "position")...).
		Values(c.ID, c.PermitID, c.Description, c.DueDate, c.Status, c.RiskLevel,
			c.EvidenceRequired, c.EvidenceUploaded, c.Owner, position).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, query, args...)
	if err != nil {
		return insertErr("condition", c.ID, err)
	}

	return nil
}

func insertEvidence(ctx context.Context, q querier, e entity.Evidence, position int64) error {
	query, args, err := psql.Insert("evidence").
		Columns(append(evidenceColumns, "position")...).
		Values(e.ID, e.ConditionID, e.FileName, e.UploadedBy, e.UploadDate, tags(e.Tags),
			e.ContentType, e.Size, e.BlobKey, position).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, query, args...)
	if err != nil {
		return insertErr("evidence", e.ID, err)
	}

	return nil
}

func insertErr(kind, id string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s %s: %w", kind, id, entity.ErrAlreadyExists)
	}

	return fmt.Errorf("insert %s %s: %w", kind, id, err)
}

func selectPermits(ctx context.Context, q querier, where sq.Sqlizer) ([]entity.Permit, error) {
	stmt := psql.Select(permitColumns...).From("permits").OrderBy("position")
	if where != nil {
		stmt = stmt.Where(where)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select permits: %w", err)
	}

	defer rows.Close()

	permits := make([]entity.Permit, 0)

	for rows.Next() {
		var p entity.Permit

		err = rows.Scan(&p.ID, &p.Project, &p.Name, &p.Jurisdiction, &p.Type, &p.EffectiveDate, &p.ExpirationDate,
			&p.Owner, &p.Status, &p.Description, &p.DocumentURL, &p.DocumentName)
		if err != nil {
			return nil, fmt.Errorf("scan permit: %w", err)
		}

		permits = append(permits, p)
	}

	return permits, rows.Err()
}

func conditionByID(ctx context.Context, q querier, id string) (entity.Condition, error) {
	conditions, err := selectConditions(ctx, q, sq.Eq{"id": id})
	if err != nil {
		return entity.Condition{}, err
	}

	if len(conditions) == 0 {
		return entity.Condition{}, fmt.Errorf("condition %s: %w", id, entity.ErrNotFound)
	}

	return conditions[0], nil
}

func selectConditions(ctx context.Context, q querier, where sq.Sqlizer) ([]entity.Condition, error) {
	stmt := psql.Select(conditionColumns...).From("conditions").OrderBy("position")
	if where != nil {
		stmt = stmt.Where(where)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select conditions: %w", err)
	}

	defer rows.Close()

	conditions := make([]entity.Condition, 0)

	for rows.Next() {
		var c entity.Condition

		err = rows.Scan(&c.ID, &c.PermitID, &c.Description, &c.DueDate, &c.Status, &c.RiskLevel,
			&c.EvidenceRequired, &c.EvidenceUploaded, &c.Owner)
		if err != nil {
			return nil, fmt.Errorf("scan condition: %w", err)
		}

		conditions = append(conditions, c)
	}

	return conditions, rows.Err()
}

func selectEvidence(ctx context.Context, q querier, where sq.Sqlizer) ([]entity.Evidence, error) {
	stmt := psql.Select(evidenceColumns...).From("evidence").OrderBy("position")
	if where != nil {
		stmt = stmt.Where(where)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select evidence: %w", err)
	}

	defer rows.Close()

	evidence := make([]entity.Evidence, 0)

	for rows.Next() {
		var e entity.Evidence

		err = rows.Scan(&e.ID, &e.ConditionID, &e.FileName, &e.UploadedBy, &e.UploadDate, &e.Tags,
			&e.ContentType, &e.Size, &e.BlobKey)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}

		evidence = append(evidence, e)
	}

	return evidence, rows.Err()
}

func selectMilestones(ctx context.Context, q querier) ([]entity.Milestone, error) {
	query, args, err := psql.Select(milestoneColumns...).From("milestones").OrderBy("position").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select milestones: %w", err)
	}

	defer rows.Close()

	milestones := make([]entity.Milestone, 0)

	for rows.Next() {
		var m entity.Milestone

		err = rows.Scan(&m.ID, &m.PermitID, &m.Name, &m.DueDate, &m.Status)
		if err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}

		milestones = append(milestones, m)
	}

	return milestones, rows.Err()
}

func tags(v []string) []string {
	if v == nil {
		return []string{}
	}

	return v
}

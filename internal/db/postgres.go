package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nagrik-seva/backend/internal/models"
)

// PGStore is the opt-in persistent backend, selected when DATABASE_URL is
// set. It implements the same Store contract as MemStore.
type PGStore struct {
	Pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &PGStore{Pool: pool}, nil
}

const issuesDDL = `
CREATE TABLE IF NOT EXISTS issues (
	id SERIAL PRIMARY KEY,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	location TEXT NOT NULL,
	status TEXT NOT NULL,
	affected_count INT NOT NULL DEFAULT 1,
	days_unresolved INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	resolved_at TIMESTAMPTZ,
	updates JSONB NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	lat DOUBLE PRECISION,
	lng DOUBLE PRECISION
)`

const messagesDDL = `
CREATE TABLE IF NOT EXISTS messages (
	id SERIAL PRIMARY KEY,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	user_id TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the tables when missing and installs the demo
// fixtures into an empty database.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	for _, ddl := range []string{issuesDDL, messagesDDL} {
		if _, err := s.Pool.Exec(ctx, ddl); err != nil {
			return err
		}
	}
	var count int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM issues`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return Seed(ctx, s)
	}
	return nil
}

const issueColumns = `id, description, category, location, status, affected_count, days_unresolved, created_at, resolved_at, updates, user_id, lat, lng`

func (s *PGStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+issueColumns+` FROM issues ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, issue)
	}
	return out, rows.Err()
}

func (s *PGStore) GetIssue(ctx context.Context, id int) (models.Issue, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	issue, err := scanIssue(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Issue{}, ErrNotFound
	}
	return issue, err
}

func (s *PGStore) CreateIssue(ctx context.Context, params CreateIssueParams) (models.Issue, error) {
	status := params.Status
	if !models.IsValidStatus(status) {
		status = models.StatusReported
	}
	affected := params.AffectedCount
	if affected < 1 {
		affected = 1
	}
	days := params.DaysUnresolved
	if days < 0 {
		days = 0
	}
	now := time.Now().UTC()
	updates := []models.StatusUpdate{{Status: status, Date: now}}
	updatesJSON, err := json.Marshal(updates)
	if err != nil {
		return models.Issue{}, err
	}

	row := s.Pool.QueryRow(ctx, `
		INSERT INTO issues (description, category, location, status, affected_count, days_unresolved, created_at, updates, user_id, lat, lng)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+issueColumns,
		params.Description, params.Category, params.Location, status, affected, days, now, updatesJSON, params.UserID, params.Lat, params.Lng)
	return scanIssue(row)
}

func (s *PGStore) UpdateIssueStatus(ctx context.Context, id int, status string, updates []models.StatusUpdate) (models.Issue, error) {
	updatesJSON, err := json.Marshal(updates)
	if err != nil {
		return models.Issue{}, err
	}
	row := s.Pool.QueryRow(ctx, `
		UPDATE issues
		SET status = $1,
			updates = $2,
			resolved_at = CASE WHEN $1 = $3 AND resolved_at IS NULL THEN NOW() ELSE resolved_at END
		WHERE id = $4
		RETURNING `+issueColumns,
		status, updatesJSON, models.StatusResolved, id)
	issue, err := scanIssue(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Issue{}, ErrNotFound
	}
	return issue, err
}

func (s *PGStore) SimulateDays(ctx context.Context, days int) (int, error) {
	if days < 0 {
		return 0, ErrNegativeDays
	}
	tag, err := s.Pool.Exec(ctx,
		`UPDATE issues SET days_unresolved = days_unresolved + $1 WHERE status <> $2`,
		days, models.StatusResolved)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *PGStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, role, content, created_at, user_id FROM messages ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt, &msg.UserID); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateMessage(ctx context.Context, params CreateMessageParams) (models.Message, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO messages (role, content, created_at, user_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id, role, content, created_at, user_id`,
		params.Role, params.Content, time.Now().UTC(), params.UserID)

	var msg models.Message
	if err := row.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.CreatedAt, &msg.UserID); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *PGStore) Close() {
	s.Pool.Close()
}

func scanIssue(row pgx.Row) (models.Issue, error) {
	var (
		issue       models.Issue
		updatesJSON []byte
	)
	if err := row.Scan(
		&issue.ID, &issue.Description, &issue.Category, &issue.Location, &issue.Status,
		&issue.AffectedCount, &issue.DaysUnresolved, &issue.CreatedAt, &issue.ResolvedAt,
		&updatesJSON, &issue.UserID, &issue.Lat, &issue.Lng,
	); err != nil {
		return models.Issue{}, err
	}
	if err := json.Unmarshal(updatesJSON, &issue.Updates); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/model"
)

// SQLiteProjectRepository stores projects in an embedded SQLite file.
// IDs and timestamps are generated in Go; amounts are stored as text
// to keep decimal precision out of SQLite's float affinity.
type SQLiteProjectRepository struct {
	db *sql.DB
}

func NewSQLiteProjectRepository(db *sql.DB) *SQLiteProjectRepository {
	return &SQLiteProjectRepository{db: db}
}

func (r *SQLiteProjectRepository) Create(ctx context.Context, p *model.Project) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, owner_email, currency, budget_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.OwnerEmail, p.Currency, p.BudgetAmount.String(), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *SQLiteProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanSQLiteProject(r.db.QueryRowContext(ctx,
		`SELECT id, name, description, owner_email, currency, budget_amount, created_at, updated_at
		FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *SQLiteProjectRepository) List(ctx context.Context, limit, offset int) ([]*model.Project, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, owner_email, currency, budget_amount, created_at, updated_at
		FROM projects ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanSQLiteProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *SQLiteProjectRepository) Update(ctx context.Context, p *model.Project) error {
	p.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects
		SET name = ?, description = ?, owner_email = ?, currency = ?, budget_amount = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.OwnerEmail, p.Currency, p.BudgetAmount.String(), p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteProjectRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanSQLiteProject(row rowScanner) (*model.Project, error) {
	var (
		p      model.Project
		amount string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerEmail, &p.Currency, &amount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	p.BudgetAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse budget amount %q: %w", amount, err)
	}
	return &p, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/model"
)

type PostgresProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProjectRepository(pool *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{pool: pool}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, description, owner_email, currency, budget_amount)
		VALUES ($1, $2, $3, $4, $5::numeric)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.OwnerEmail, p.Currency, p.BudgetAmount.String(),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT id, name, description, owner_email, currency, budget_amount::text, created_at, updated_at
		FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PostgresProjectRepository) List(ctx context.Context, limit, offset int) ([]*model.Project, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, owner_email, currency, budget_amount::text, created_at, updated_at
		FROM projects ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		SET name = $1, description = $2, owner_email = $3, currency = $4, budget_amount = $5::numeric, updated_at = now()
		WHERE id = $6`,
		p.Name, p.Description, p.OwnerEmail, p.Currency, p.BudgetAmount.String(), p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return r.pool.QueryRow(ctx,
		`SELECT updated_at FROM projects WHERE id = $1`, p.ID).Scan(&p.UpdatedAt)
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
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

package repository

import (
	"context"
	"errors"

	"github.com/anyulbade/project-budget-service/internal/model"
)

// ErrNotFound is returned for lookups, updates and deletes that match
// no project, regardless of backend.
var ErrNotFound = errors.New("project not found")

// ProjectRepository is the storage contract for project budget records.
// Two implementations exist, selected by STORAGE_DRIVER: postgres
// (pgx pool) and sqlite (pure-Go driver via database/sql).
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, limit, offset int) ([]*model.Project, int, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

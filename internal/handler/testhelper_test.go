package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/model"
	"github.com/anyulbade/project-budget-service/internal/repository"
	"github.com/anyulbade/project-budget-service/internal/service"
)

// memRepo is an in-memory ProjectRepository for handler tests.
type memRepo struct {
	mu       sync.Mutex
	projects map[string]model.Project
	pingErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{projects: make(map[string]model.Project)}
}

func (r *memRepo) Create(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.projects[p.ID] = *p
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*model.Project, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*model.Project, 0, len(r.projects))
	for id := range r.projects {
		p := r.projects[id]
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memRepo) Update(_ context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	r.projects[p.ID] = *p
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memRepo) Ping(_ context.Context) error {
	return r.pingErr
}

type converterFunc func(ctx context.Context, req fx.Request) (fx.Result, error)

func (f converterFunc) Convert(ctx context.Context, req fx.Request) (fx.Result, error) {
	return f(ctx, req)
}

// newTestRouter assembles the API the way cmd/server does, over an
// in-memory repository and a stubbed converter.
func newTestRouter(repo repository.ProjectRepository, converter service.Converter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	projectService := service.NewProjectService(repo)
	enrichmentService := service.NewEnrichmentService(repo, converter)

	projectHandler := NewProjectHandler(projectService)
	conversionHandler := NewConversionHandler(converter, enrichmentService)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/projects", projectHandler.Create)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.Get)
		api.PUT("/projects/:id", projectHandler.Update)
		api.DELETE("/projects/:id", projectHandler.Delete)

		api.GET("/projects/:id/budget/conversion", conversionHandler.ConvertBudget)
		api.POST("/projects/:id/budget/conversions", conversionHandler.ConvertBudgetMulti)
		api.POST("/conversions", conversionHandler.Convert)
	}
	return router
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anyulbade/project-budget-service/internal/dto"
	"github.com/anyulbade/project-budget-service/internal/model"
	"github.com/anyulbade/project-budget-service/internal/repository"
)

// ValidationError reports a request field that failed a business rule
// gin's binding tags cannot express.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ProjectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*model.Project, error) {
	if !req.BudgetAmount.IsPositive() {
		return nil, &ValidationError{Field: "budget_amount", Message: "must be greater than zero"}
	}

	p := &model.Project{
		Name:         req.Name,
		Description:  req.Description,
		OwnerEmail:   req.OwnerEmail,
		Currency:     strings.ToUpper(req.Currency),
		BudgetAmount: req.BudgetAmount,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, params dto.PaginationParams) ([]*model.Project, int, error) {
	return s.repo.List(ctx, params.PageSize, params.Offset)
}

func (s *ProjectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest) (*model.Project, error) {
	if !req.BudgetAmount.IsPositive() {
		return nil, &ValidationError{Field: "budget_amount", Message: "must be greater than zero"}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.OwnerEmail = req.OwnerEmail
	p.Currency = strings.ToUpper(req.Currency)
	p.BudgetAmount = req.BudgetAmount

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

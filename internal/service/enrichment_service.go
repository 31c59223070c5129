package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/model"
	"github.com/anyulbade/project-budget-service/internal/repository"
)

// Converter is the slice of fx.Service the enrichment path needs.
type Converter interface {
	Convert(ctx context.Context, req fx.Request) (fx.Result, error)
}

// EnrichmentService converts stored project budgets into other
// currencies.
type EnrichmentService struct {
	repo      repository.ProjectRepository
	converter Converter
}

func NewEnrichmentService(repo repository.ProjectRepository, converter Converter) *EnrichmentService {
	return &EnrichmentService{repo: repo, converter: converter}
}

// ConvertBudget converts one project's budget into targetCurrency,
// using the historical rate for date when given.
func (s *EnrichmentService) ConvertBudget(ctx context.Context, projectID, targetCurrency string, date *fx.Date) (*model.Project, fx.Result, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fx.Result{}, err
	}

	res, err := s.converter.Convert(ctx, fx.Request{
		From:   p.Currency,
		To:     targetCurrency,
		Amount: p.BudgetAmount,
		Date:   date,
	})
	if err != nil {
		return nil, fx.Result{}, err
	}
	return p, res, nil
}

// ConvertBudgetMulti converts one project's budget into several target
// currencies concurrently. The first classified failure cancels the
// remaining lookups.
func (s *EnrichmentService) ConvertBudgetMulti(ctx context.Context, projectID string, targetCurrencies []string, date *fx.Date) (*model.Project, []fx.Result, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	results := make([]fx.Result, len(targetCurrencies))
	g, gctx := errgroup.WithContext(ctx)
	for i, currency := range targetCurrencies {
		i, currency := i, currency
		g.Go(func() error {
			res, err := s.converter.Convert(gctx, fx.Request{
				From:   p.Currency,
				To:     currency,
				Amount: p.BudgetAmount,
				Date:   date,
			})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return p, results, nil
}

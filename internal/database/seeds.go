package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/model"
	"github.com/anyulbade/project-budget-service/internal/repository"
)

var seedProjects = []model.Project{
	{
		Name:         "Website Relaunch",
		Description:  "Marketing site rebuild with new CMS",
		OwnerEmail:   "maria.t@example.com",
		Currency:     "USD",
		BudgetAmount: decimal.NewFromInt(42000),
	},
	{
		Name:         "Port of Spain Office Fit-Out",
		Description:  "Furniture, networking and AV for the new floor",
		OwnerEmail:   "dcharles@example.com",
		Currency:     "TTD",
		BudgetAmount: decimal.NewFromInt(185000),
	},
	{
		Name:         "EU Compliance Audit",
		OwnerEmail:   "legal@example.com",
		Currency:     "EUR",
		BudgetAmount: decimal.RequireFromString("15750.50"),
	},
}

// SeedProjects inserts sample records through the repository, so it
// works against either storage backend. Skipped when the table already
// has data.
func SeedProjects(ctx context.Context, repo repository.ProjectRepository) error {
	_, total, err := repo.List(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("check existing projects: %w", err)
	}
	if total > 0 {
		log.Info().Int("existing", total).Msg("projects present, skipping seed")
		return nil
	}

	for i := range seedProjects {
		p := seedProjects[i]
		if err := repo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Name, err)
		}
	}

	log.Info().Int("inserted", len(seedProjects)).Msg("seeded sample projects")
	return nil
}

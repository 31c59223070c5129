package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	OwnerEmail   string          `json:"owner_email,omitempty"`
	Currency     string          `json:"currency"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

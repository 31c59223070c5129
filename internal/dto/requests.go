package dto

import "github.com/shopspring/decimal"

type CreateProjectRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	OwnerEmail   string          `json:"owner_email" binding:"omitempty,email"`
	Currency     string          `json:"currency" binding:"required,len=3,alpha"`
	BudgetAmount decimal.Decimal `json:"budget_amount" binding:"required"`
}

type UpdateProjectRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	OwnerEmail   string          `json:"owner_email" binding:"omitempty,email"`
	Currency     string          `json:"currency" binding:"required,len=3,alpha"`
	BudgetAmount decimal.Decimal `json:"budget_amount" binding:"required"`
}

type ConvertRequest struct {
	SourceCurrency string          `json:"source_currency" binding:"required,len=3,alpha"`
	TargetCurrency string          `json:"target_currency" binding:"required,len=3,alpha"`
	Amount         decimal.Decimal `json:"amount"`
	// Date selects the historical rate for YYYY-MM-DD; empty means the
	// latest rate.
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MultiConvertRequest struct {
	TargetCurrencies []string `json:"target_currencies" binding:"required,min=1,max=10,dive,len=3,alpha"`
	Date             string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

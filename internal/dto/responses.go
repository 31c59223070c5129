package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/model"
)

type ProjectResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	OwnerEmail   string          `json:"owner_email,omitempty"`
	Currency     string          `json:"currency"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		OwnerEmail:   p.OwnerEmail,
		Currency:     p.Currency,
		BudgetAmount: p.BudgetAmount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type ProjectListResponse struct {
	Data       []ProjectResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type ConversionResponse struct {
	SourceCurrency  string          `json:"source_currency"`
	TargetCurrency  string          `json:"target_currency"`
	Amount          decimal.Decimal `json:"amount"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	UsedFallback    bool            `json:"used_fallback"`
	Date            string          `json:"date,omitempty"`
}

func NewConversionResponse(res fx.Result, date string) ConversionResponse {
	return ConversionResponse{
		SourceCurrency:  res.From,
		TargetCurrency:  res.To,
		Amount:          res.Amount,
		Rate:            res.Rate,
		ConvertedAmount: res.ConvertedAmount,
		UsedFallback:    res.UsedFallback,
		Date:            date,
	}
}

type ProjectConversionResponse struct {
	ProjectID  string             `json:"project_id"`
	Conversion ConversionResponse `json:"conversion"`
}

type MultiConversionResponse struct {
	ProjectID   string               `json:"project_id"`
	Conversions []ConversionResponse `json:"conversions"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

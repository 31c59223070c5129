package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/project-budget-service/internal/dto"
	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/service"
)

type ConversionHandler struct {
	converter  service.Converter
	enrichment *service.EnrichmentService
}

func NewConversionHandler(converter service.Converter, enrichment *service.EnrichmentService) *ConversionHandler {
	return &ConversionHandler{converter: converter, enrichment: enrichment}
}

// Convert handles ad-hoc conversions not tied to a stored project.
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	date, ok := parseOptionalDate(c, req.Date)
	if !ok {
		return
	}

	res, err := h.converter.Convert(c.Request.Context(), fx.Request{
		From:   req.SourceCurrency,
		To:     req.TargetCurrency,
		Amount: req.Amount,
		Date:   date,
	})
	if err != nil {
		respondConversionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewConversionResponse(res, req.Date))
}

// ConvertBudget converts a stored project's budget into the currency
// given by the ?currency query parameter.
func (h *ConversionHandler) ConvertBudget(c *gin.Context) {
	currency := c.Query("currency")
	if currency == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "query parameter 'currency' is required",
		})
		return
	}

	dateParam := c.Query("date")
	date, ok := parseOptionalDate(c, dateParam)
	if !ok {
		return
	}

	p, res, err := h.enrichment.ConvertBudget(c.Request.Context(), c.Param("id"), currency, date)
	if err != nil {
		respondConversionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProjectConversionResponse{
		ProjectID:  p.ID,
		Conversion: dto.NewConversionResponse(res, dateParam),
	})
}

// ConvertBudgetMulti converts a stored project's budget into several
// currencies in one call.
func (h *ConversionHandler) ConvertBudgetMulti(c *gin.Context) {
	var req dto.MultiConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	date, ok := parseOptionalDate(c, req.Date)
	if !ok {
		return
	}

	p, results, err := h.enrichment.ConvertBudgetMulti(c.Request.Context(), c.Param("id"), req.TargetCurrencies, date)
	if err != nil {
		respondConversionError(c, err)
		return
	}

	conversions := make([]dto.ConversionResponse, len(results))
	for i, res := range results {
		conversions[i] = dto.NewConversionResponse(res, req.Date)
	}

	c.JSON(http.StatusOK, dto.MultiConversionResponse{
		ProjectID:   p.ID,
		Conversions: conversions,
	})
}

func parseOptionalDate(c *gin.Context, raw string) (*fx.Date, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := fx.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return &d, true
}

func respondConversionError(c *gin.Context, err error) {
	if errors.Is(err, fx.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	switch kind := fx.KindOf(err); kind {
	case fx.KindCurrencyNotFound:
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: err.Error(),
			Kind:  kind.String(),
		})
	case fx.KindProviderError, fx.KindParseError:
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Error: err.Error(),
			Kind:  kind.String(),
		})
	case fx.KindNetworkError:
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{
			Error: err.Error(),
			Kind:  kind.String(),
		})
	default:
		// Storage failures from the enrichment path land here.
		respondServiceError(c, err)
	}
}

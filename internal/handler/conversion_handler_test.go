package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/project-budget-service/internal/dto"
	"github.com/anyulbade/project-budget-service/internal/fx"
)

func staticConverter(rate string, usedFallback bool) converterFunc {
	return func(_ context.Context, req fx.Request) (fx.Result, error) {
		r := decimal.RequireFromString(rate)
		return fx.Result{
			From:            req.From,
			To:              req.To,
			Amount:          req.Amount,
			Rate:            r,
			ConvertedAmount: req.Amount.Mul(r),
			UsedFallback:    usedFallback,
		}, nil
	}
}

func failingConverter(err error) converterFunc {
	return func(_ context.Context, _ fx.Request) (fx.Result, error) {
		return fx.Result{}, err
	}
}

func TestConversionHandler_Convert(t *testing.T) {
	router := newTestRouter(newMemRepo(), staticConverter("6.75", false))

	w := doJSON(router, http.MethodPost, "/api/v1/conversions",
		`{"source_currency":"USD","target_currency":"TTD","amount":"100"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ConversionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.SourceCurrency)
	assert.Equal(t, "TTD", resp.TargetCurrency)
	assert.True(t, resp.Rate.Equal(decimal.RequireFromString("6.75")))
	assert.True(t, resp.ConvertedAmount.Equal(decimal.NewFromInt(675)))
	assert.False(t, resp.UsedFallback)
}

func TestConversionHandler_Convert_Validation(t *testing.T) {
	router := newTestRouter(newMemRepo(), staticConverter("1", false))

	tests := []struct {
		name string
		body string
	}{
		{"missing currencies", `{"amount":"10"}`},
		{"bad currency length", `{"source_currency":"US","target_currency":"TTD"}`},
		{"bad date format", `{"source_currency":"USD","target_currency":"TTD","date":"14-07-2023"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/v1/conversions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestConversionHandler_ConvertBudget(t *testing.T) {
	repo := newMemRepo()
	p := seedProject(t, repo) // 100 USD
	router := newTestRouter(repo, staticConverter("6.75", true))

	w := doJSON(router, http.MethodGet, "/api/v1/projects/"+p.ID+"/budget/conversion?currency=TTD", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ProjectConversionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, p.ID, resp.ProjectID)
	assert.Equal(t, "USD", resp.Conversion.SourceCurrency)
	assert.Equal(t, "TTD", resp.Conversion.TargetCurrency)
	assert.True(t, resp.Conversion.ConvertedAmount.Equal(decimal.NewFromInt(675)))
	assert.True(t, resp.Conversion.UsedFallback)
}

func TestConversionHandler_ConvertBudget_BadInputs(t *testing.T) {
	repo := newMemRepo()
	p := seedProject(t, repo)
	router := newTestRouter(repo, staticConverter("1", false))

	t.Run("missing currency param", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/projects/"+p.ID+"/budget/conversion", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad date param", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/projects/"+p.ID+"/budget/conversion?currency=EUR&date=notadate", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown project", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/projects/unknown/budget/conversion?currency=EUR", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestConversionHandler_ErrorKindMapping(t *testing.T) {
	repo := newMemRepo()
	p := seedProject(t, repo)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "currency not found",
			err:        &fx.Error{Kind: fx.KindCurrencyNotFound, From: "USD", To: "XYZ"},
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "currency_not_found",
		},
		{
			name:       "provider error",
			err:        &fx.Error{Kind: fx.KindProviderError, From: "USD", ProviderCode: "invalid-key"},
			wantStatus: http.StatusBadGateway,
			wantKind:   "provider_error",
		},
		{
			name:       "parse error",
			err:        &fx.Error{Kind: fx.KindParseError, From: "USD"},
			wantStatus: http.StatusBadGateway,
			wantKind:   "parse_error",
		},
		{
			name:       "network error",
			err:        &fx.Error{Kind: fx.KindNetworkError, From: "USD", Attempts: 4},
			wantStatus: http.StatusGatewayTimeout,
			wantKind:   "network_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(repo, failingConverter(tt.err))

			w := doJSON(router, http.MethodGet, "/api/v1/projects/"+p.ID+"/budget/conversion?currency=XYZ", "")
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
		})
	}
}

func TestConversionHandler_ConvertBudgetMulti(t *testing.T) {
	repo := newMemRepo()
	p := seedProject(t, repo) // 100 USD
	router := newTestRouter(repo, staticConverter("2", false))

	w := doJSON(router, http.MethodPost, "/api/v1/projects/"+p.ID+"/budget/conversions",
		`{"target_currencies":["TTD","EUR","GBP"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.MultiConversionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, p.ID, resp.ProjectID)
	require.Len(t, resp.Conversions, 3)
	for i, target := range []string{"TTD", "EUR", "GBP"} {
		assert.Equal(t, target, resp.Conversions[i].TargetCurrency)
		assert.True(t, resp.Conversions[i].ConvertedAmount.Equal(decimal.NewFromInt(200)))
	}
}

func TestConversionHandler_ConvertBudgetMulti_Validation(t *testing.T) {
	repo := newMemRepo()
	p := seedProject(t, repo)
	router := newTestRouter(repo, staticConverter("1", false))

	w := doJSON(router, http.MethodPost, "/api/v1/projects/"+p.ID+"/budget/conversions",
		`{"target_currencies":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

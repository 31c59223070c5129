package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/project-budget-service/internal/dto"
	"github.com/anyulbade/project-budget-service/internal/fx"
	"github.com/anyulbade/project-budget-service/internal/model"
)

func noConversion() converterFunc {
	return func(_ context.Context, _ fx.Request) (fx.Result, error) {
		return fx.Result{}, &fx.Error{Kind: fx.KindNetworkError}
	}
}

func seedProject(t *testing.T, repo *memRepo) *model.Project {
	t.Helper()
	p := &model.Project{
		Name:         "Website Relaunch",
		Currency:     "USD",
		BudgetAmount: decimal.NewFromInt(100),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProjectHandler_Create(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(repo, noConversion())

	t.Run("valid request", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/projects",
			`{"name":"Website Relaunch","currency":"usd","budget_amount":"42000","owner_email":"maria.t@example.com"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "USD", resp.Currency)
		assert.True(t, resp.BudgetAmount.Equal(decimal.NewFromInt(42000)))
	})

	t.Run("missing required fields", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/projects", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive budget", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/projects",
			`{"name":"x","currency":"USD","budget_amount":"-5"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "budget_amount")
	})

	t.Run("bad currency code", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/projects",
			`{"name":"x","currency":"DOLLARS","budget_amount":"5"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProjectHandler_GetUpdateDelete(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(repo, noConversion())
	p := seedProject(t, repo)

	t.Run("get", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/projects/"+p.ID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, p.ID, resp.ID)
	})

	t.Run("get missing", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/projects/unknown-id", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/api/v1/projects/"+p.ID,
			`{"name":"Relaunch v2","currency":"EUR","budget_amount":"999.99"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.ProjectResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Relaunch v2", resp.Name)
		assert.Equal(t, "EUR", resp.Currency)
		assert.True(t, resp.BudgetAmount.Equal(decimal.RequireFromString("999.99")))
	})

	t.Run("update missing", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/api/v1/projects/unknown-id",
			`{"name":"x","currency":"USD","budget_amount":"1"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/api/v1/projects/"+p.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, http.MethodDelete, "/api/v1/projects/"+p.ID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectHandler_List(t *testing.T) {
	repo := newMemRepo()
	router := newTestRouter(repo, noConversion())
	for i := 0; i < 5; i++ {
		seedProject(t, repo)
	}

	w := doJSON(router, http.MethodGet, "/api/v1/projects?page=1&page_size=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, 5, resp.Pagination.TotalItems)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

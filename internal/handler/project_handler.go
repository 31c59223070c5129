package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/project-budget-service/internal/dto"
	"github.com/anyulbade/project-budget-service/internal/middleware"
	"github.com/anyulbade/project-budget-service/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) List(c *gin.Context) {
	params := dto.ParsePagination(c)

	projects, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		data[i] = dto.NewProjectResponse(p)
	}

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Data:       data,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(p))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Error()})
		return
	}

	status, resp := middleware.MapStorageError(err)
	c.JSON(status, dto.ErrorResponse{Error: resp.Error, Details: resp.Details})
}

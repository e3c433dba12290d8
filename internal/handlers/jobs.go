package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// JobService is what the job routes need from the store.
type JobService interface {
	Create(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error)
	Search(ctx context.Context, filter sqlgen.Fields) ([]models.Job, error)
	Get(ctx context.Context, id int) (*models.Job, error)
	Update(ctx context.Context, id int, fields sqlgen.Fields) (*models.Job, error)
	Remove(ctx context.Context, id int) error
}

// Dependency injection
type JobHandler struct {
	Jobs JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j JobService) *JobHandler {
	return &JobHandler{Jobs: j}
}

// Create is the POST /jobs endpoint
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if !decodeBody(c, &req) {
		return
	}
	job, err := h.Jobs.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// List is GET /jobs, optionally filtered by title, minSalary and hasEquity.
func (h *JobHandler) List(c *gin.Context) {
	filter, err := dtos.BindFilter(c.Request.URL.RawQuery, dtos.JobFilterKeys)
	if err != nil {
		_ = c.Error(err)
		return
	}
	jobs, err := h.Jobs.Search(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	var req dtos.JobUpdateRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}
	job, err := h.Jobs.Update(c.Request.Context(), id, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) Remove(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}
	if err := h.Jobs.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// jobID parses the :id route parameter. An id that is not a positive int32 can't exist.
func jobID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		_ = c.Error(apperr.NotFoundf("No job: %s", raw))
		return 0, false
	}
	return int(id), true
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

// CompanyService is what the company routes need from the store.
type CompanyService interface {
	Create(ctx context.Context, req *dtos.CompanyCreationRequest) (*models.Company, error)
	Search(ctx context.Context, filter sqlgen.Fields) ([]models.Company, error)
	Get(ctx context.Context, handle string) (*models.Company, error)
	Update(ctx context.Context, handle string, fields sqlgen.Fields) (*models.Company, error)
	Remove(ctx context.Context, handle string) error
}

type CompanyHandler struct {
	Companies CompanyService
}

func NewCompanyHandler(s CompanyService) *CompanyHandler {
	return &CompanyHandler{Companies: s}
}

// Create is the POST /companies endpoint
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dtos.CompanyCreationRequest
	if !decodeBody(c, &req) {
		return
	}
	company, err := h.Companies.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": company})
}

// List is GET /companies, optionally filtered by nameLike, minEmployees and maxEmployees.
func (h *CompanyHandler) List(c *gin.Context) {
	filter, err := dtos.BindFilter(c.Request.URL.RawQuery, dtos.CompanyFilterKeys)
	if err != nil {
		_ = c.Error(err)
		return
	}
	companies, err := h.Companies.Search(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.Companies.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": dtos.NewCompanyDetail(company)})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req dtos.CompanyUpdateRequest
	fields, ok := bindPatch(c, &req)
	if !ok {
		return
	}
	company, err := h.Companies.Update(c.Request.Context(), c.Param("handle"), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *CompanyHandler) Remove(c *gin.Context) {
	handle := c.Param("handle")
	if err := h.Companies.Remove(c.Request.Context(), handle); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": handle})
}

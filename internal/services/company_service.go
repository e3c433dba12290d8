package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/justsurfingit/jobly/internal/apperr"
	"github.com/justsurfingit/jobly/internal/database"
	"github.com/justsurfingit/jobly/internal/dtos"
	"github.com/justsurfingit/jobly/internal/models"
	"github.com/justsurfingit/jobly/internal/sqlgen"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{
		DB: db,
	}
}

// Create inserts a company. A taken handle or name is a conflict.
func (s *CompanyService) Create(ctx context.Context, req *dtos.CompanyCreationRequest) (*models.Company, error) {
	company := &models.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	}
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		if errors.Is(database.Classify(err), database.ErrDuplicateKey) {
			return nil, apperr.Conflict(err, "Duplicate company: %s", req.Handle)
		}
		return nil, storeError(err, "create company")
	}
	log.Printf("[INFO] company %s created", company.Handle)
	return company, nil
}

// FindAll lists every company ordered by name.
func (s *CompanyService) FindAll(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	if err := s.DB.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, storeError(err, "list companies")
	}
	return companies, nil
}

// Search lists the companies matching every filter, ordered by name.
// Filters that restrict nothing fall back to the full listing.
func (s *CompanyService) Search(ctx context.Context, filter sqlgen.Fields) ([]models.Company, error) {
	where, err := sqlgen.Predicates(filter, CompanyFilters)
	if err != nil {
		return nil, err
	}
	if where.Empty() {
		return s.FindAll(ctx)
	}

	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s ORDER BY name`, companyColumns, where.Join(" AND "))
	companies := []models.Company{}
	if err := s.DB.WithContext(ctx).Raw(query, where.Values...).Scan(&companies).Error; err != nil {
		return nil, storeError(err, "search companies")
	}
	return companies, nil
}

// Get returns a company with its jobs.
func (s *CompanyService) Get(ctx context.Context, handle string) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Preload("Jobs", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&company, "handle = ?", handle).Error
	if err != nil {
		if errors.Is(database.Classify(err), database.ErrNotFound) {
			return nil, apperr.NotFoundf("No company: %s", handle)
		}
		return nil, storeError(err, "get company")
	}
	if company.Jobs == nil {
		company.Jobs = []models.Job{}
	}
	return &company, nil
}

// Update applies a partial update and returns the updated company.
func (s *CompanyService) Update(ctx context.Context, handle string, fields sqlgen.Fields) (*models.Company, error) {
	if err := checkImmutable(fields, companyImmutable); err != nil {
		return nil, err
	}
	set, err := sqlgen.PartialUpdate(fields, CompanyFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE handle = $%d RETURNING %s`,
		set.Join(", "), set.Next(), companyColumns)
	args := append(set.Values, handle)

	var company models.Company
	res := s.DB.WithContext(ctx).Raw(query, args...).Scan(&company)
	if res.Error != nil {
		if errors.Is(database.Classify(res.Error), database.ErrDuplicateKey) {
			return nil, apperr.Conflict(res.Error, "Duplicate company name")
		}
		return nil, storeError(res.Error, "update company")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("No company: %s", handle)
	}
	log.Printf("[INFO] company %s updated, fields %v", handle, fields.Keys())
	return &company, nil
}

// Remove deletes a company and, by cascade, its jobs.
func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	res := s.DB.WithContext(ctx).Delete(&models.Company{}, "handle = ?", handle)
	if res.Error != nil {
		return storeError(res.Error, "delete company")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("No company: %s", handle)
	}
	log.Printf("[INFO] company %s deleted", handle)
	return nil
}

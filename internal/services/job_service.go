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

const jobColumns = `id, title, salary, equity, company_handle`

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// Create inserts a job for an existing company.
func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	job := &models.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	}
	// the company must exist, the foreign key decides
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		if errors.Is(database.Classify(err), database.ErrForeignKeyViolation) {
			return nil, apperr.NotFoundf("No company: %s", req.CompanyHandle)
		}
		return nil, storeError(err, "create job")
	}
	log.Printf("[INFO] job %d (%s) created for %s", job.ID, job.Title, job.CompanyHandle)
	return job, nil
}

// FindAll lists every job ordered by title.
func (s *JobService) FindAll(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Order("title").Order("id").Find(&jobs).Error; err != nil {
		return nil, storeError(err, "list jobs")
	}
	return jobs, nil
}

// Search lists the jobs matching every filter, ordered by title.
// A lone hasEquity=false restricts nothing and returns the full listing.
func (s *JobService) Search(ctx context.Context, filter sqlgen.Fields) ([]models.Job, error) {
	where, err := sqlgen.Predicates(filter, JobFilters)
	if err != nil {
		return nil, err
	}
	if where.Empty() {
		return s.FindAll(ctx)
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY title, id`, jobColumns, where.Join(" AND "))
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Raw(query, where.Values...).Scan(&jobs).Error; err != nil {
		return nil, storeError(err, "search jobs")
	}
	return jobs, nil
}

// Get returns a job with its company.
func (s *JobService) Get(ctx context.Context, id int) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Preload("Company").First(&job, id).Error
	if err != nil {
		if errors.Is(database.Classify(err), database.ErrNotFound) {
			return nil, apperr.NotFoundf("No job: %d", id)
		}
		return nil, storeError(err, "get job")
	}
	return &job, nil
}

// Update applies a partial update. The company of a job never changes.
func (s *JobService) Update(ctx context.Context, id int, fields sqlgen.Fields) (*models.Job, error) {
	if err := checkImmutable(fields, jobImmutable); err != nil {
		return nil, err
	}
	set, err := sqlgen.PartialUpdate(fields, JobFields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`, set.Join(", "), set.Next(), jobColumns)
	args := append(set.Values, id)

	var job models.Job
	res := s.DB.WithContext(ctx).Raw(query, args...).Scan(&job)
	if res.Error != nil {
		return nil, storeError(res.Error, "update job")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("No job: %d", id)
	}
	log.Printf("[INFO] job %d updated, fields %v", id, fields.Keys())
	return &job, nil
}

// Remove deletes a job.
func (s *JobService) Remove(ctx context.Context, id int) error {
	res := s.DB.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return storeError(res.Error, "delete job")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("No job: %d", id)
	}
	log.Printf("[INFO] job %d deleted", id)
	return nil
}

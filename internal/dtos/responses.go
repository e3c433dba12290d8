package dtos

import "github.com/justsurfingit/jobly/internal/models"

// CompanyDetail is a single company with its jobs, "jobs" is always present.
type CompanyDetail struct {
	*models.Company
	Jobs []JobSummary `json:"jobs"`
}

// JobSummary is a job listed under its company.
type JobSummary struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Salary *int    `json:"salary"`
	Equity *string `json:"equity"`
}

func NewCompanyDetail(c *models.Company) CompanyDetail {
	res := CompanyDetail{Company: c, Jobs: make([]JobSummary, 0, len(c.Jobs))}
	for _, j := range c.Jobs {
		res.Jobs = append(res.Jobs, JobSummary{ID: j.ID, Title: j.Title, Salary: j.Salary, Equity: j.Equity})
	}
	return res
}

// UserDetail is a single user with the ids of the jobs applied to.
type UserDetail struct {
	*models.User
	Jobs []int `json:"jobs"`
}

func NewUserDetail(u *models.User) UserDetail {
	jobs := u.Jobs
	if jobs == nil {
		jobs = []int{}
	}
	return UserDetail{User: u, Jobs: jobs}
}

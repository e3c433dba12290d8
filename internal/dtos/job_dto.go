package dtos

// JobFilterKeys is the query vocabulary of GET /jobs.
var JobFilterKeys = []string{"title", "minSalary", "hasEquity"}

type JobCreationRequest struct {
	Title         string `json:"title" binding:"required,min=1"`
	CompanyHandle string `json:"companyHandle" binding:"required,min=1,max=25"`

	// Optional Fields
	Salary *int    `json:"salary" binding:"omitempty,min=0"`
	Equity *string `json:"equity" binding:"omitempty,numeric"` // decimal string, e.g. "0.25"
}

// JobUpdateRequest is the PATCH /jobs/:id body. Neither id nor companyHandle can change.
type JobUpdateRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1"`
	Salary *int    `json:"salary" binding:"omitempty,min=0"`
	Equity *string `json:"equity" binding:"omitempty,numeric"`
}

func (r *JobUpdateRequest) Value(key string) (any, bool) {
	switch key {
	case "title":
		return deref(r.Title), true
	case "salary":
		return deref(r.Salary), true
	case "equity":
		return deref(r.Equity), true
	}
	return nil, false
}

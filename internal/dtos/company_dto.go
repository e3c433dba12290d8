package dtos

// CompanyFilterKeys is the query vocabulary of GET /companies.
var CompanyFilterKeys = []string{"nameLike", "minEmployees", "maxEmployees"}

type CompanyCreationRequest struct {
	Handle      string `json:"handle" binding:"required,min=1,max=25,lowercase"`
	Name        string `json:"name" binding:"required,min=1"`
	Description string `json:"description" binding:"required"`

	// Optional Fields
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// CompanyUpdateRequest is the PATCH /companies/:handle body. The handle can't change.
type CompanyUpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

func (r *CompanyUpdateRequest) Value(key string) (any, bool) {
	switch key {
	case "name":
		return deref(r.Name), true
	case "description":
		return deref(r.Description), true
	case "numEmployees":
		return deref(r.NumEmployees), true
	case "logoUrl":
		return deref(r.LogoURL), true
	}
	return nil, false
}

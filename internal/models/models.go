package models

type User struct {
	Username  string `gorm:"primaryKey" json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`

	// Jobs holds the ids of jobs the user applied to, only filled by a single-user lookup
	Jobs []int `gorm:"-" json:"jobs,omitempty"`
}

type Company struct {
	Handle       string  `gorm:"primaryKey" json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `gorm:"column:logo_url" json:"logoUrl"`

	// 'omitempty' keeps listings flat, only a single-company lookup fills it
	Jobs []Job `gorm:"foreignKey:CompanyHandle;references:Handle" json:"jobs,omitempty"`
}

type Job struct {
	ID     int     `gorm:"primaryKey" json:"id"`
	Title  string  `json:"title"`
	Salary *int    `json:"salary"`
	Equity *string `gorm:"type:numeric" json:"equity"`

	// Foreign Key
	CompanyHandle string `json:"companyHandle,omitempty"`
	// Association: filled by Preload for a single-job lookup
	Company *Company `gorm:"foreignKey:CompanyHandle;references:Handle" json:"company,omitempty"`
}

type Application struct {
	Username string `gorm:"primaryKey"`
	JobID    int    `gorm:"primaryKey"`
}

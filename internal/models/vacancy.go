package models

import "time"

type Vacancy struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	EmployerID      uint64    `gorm:"not null;index" json:"employer_id"`
	CompanyID       uint64    `gorm:"not null;index" json:"company_id"`
	Title           string    `gorm:"type:varchar(200);not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Requirements    string    `gorm:"type:text;not null" json:"requirements"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
	EmploymentType  string    `gorm:"type:varchar(50)" json:"employment_type"`
	ExperienceLevel string    `gorm:"type:varchar(50)" json:"experience_level"`
	Location        string    `gorm:"type:varchar(100)" json:"location"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	IsApproved      bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Employer     *User         `gorm:"foreignKey:EmployerID" json:"-"`
	Company      *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Applications []Application `gorm:"foreignKey:VacancyID" json:"applications,omitempty"`
}

// Listed reports whether the vacancy is visible in public search.
func (v *Vacancy) Listed() bool {
	return v.IsActive && v.IsApproved
}

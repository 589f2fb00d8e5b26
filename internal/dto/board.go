package dto

import (
	"time"

	"github.com/hireboard/hireboard/internal/models"
)

// CompanyDTO represents a company profile
type CompanyDTO struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Name         string    `json:"company_name"`
	Description  string    `json:"description"`
	Industry     string    `json:"industry"`
	Website      string    `json:"website"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsApproved   bool      `json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Owner        *UserDTO  `json:"owner,omitempty"`
}

// PortfolioDTO represents a seeker portfolio
type PortfolioDTO struct {
	ID              uint64     `json:"id"`
	UserID          uint64     `json:"user_id"`
	Title           string     `json:"title"`
	Profession      string     `json:"profession"`
	Bio             string     `json:"bio"`
	Skills          string     `json:"skills"`
	ExperienceYears *int       `json:"experience_years"`
	Education       string     `json:"education"`
	Projects        string     `json:"projects"`
	ContactInfo     string     `json:"contact_info"`
	IsPublic        bool       `json:"is_public"`
	IsApproved      bool       `json:"is_approved"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	Owner           *UserDTO   `json:"owner,omitempty"`
}

// VacancyDTO represents a vacancy
type VacancyDTO struct {
	ID              uint64      `json:"id"`
	EmployerID      uint64      `json:"employer_id"`
	CompanyID       uint64      `json:"company_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Requirements    string      `json:"requirements"`
	SalaryMin       *int        `json:"salary_min"`
	SalaryMax       *int        `json:"salary_max"`
	EmploymentType  string      `json:"employment_type"`
	ExperienceLevel string      `json:"experience_level"`
	Location        string      `json:"location"`
	IsActive        bool        `json:"is_active"`
	IsApproved      bool        `json:"is_approved"`
	CreatedAt       time.Time   `json:"created_at"`
	Company         *CompanyDTO `json:"company,omitempty"`
}

// ApplicationDTO represents an application with whatever relations were loaded
type ApplicationDTO struct {
	ID              uint64                   `json:"id"`
	VacancyID       uint64                   `json:"vacancy_id"`
	SeekerID        uint64                   `json:"seeker_id"`
	PortfolioID     uint64                   `json:"portfolio_id"`
	CoverLetter     string                   `json:"cover_letter"`
	Status          models.ApplicationStatus `json:"status"`
	RejectionReason *string                  `json:"rejection_reason"`
	CreatedAt       time.Time                `json:"created_at"`
	Vacancy         *VacancyDTO              `json:"vacancy,omitempty"`
	Seeker          *UserDTO                 `json:"seeker,omitempty"`
	Portfolio       *PortfolioDTO            `json:"portfolio,omitempty"`
}

// Conversion functions

func ToCompanyDTO(company models.Company) CompanyDTO {
	dto := CompanyDTO{
		ID:           company.ID,
		UserID:       company.UserID,
		Name:         company.Name,
		Description:  company.Description,
		Industry:     company.Industry,
		Website:      company.Website,
		ContactEmail: company.ContactEmail,
		Phone:        company.Phone,
		Address:      company.Address,
		IsApproved:   company.IsApproved,
		CreatedAt:    company.CreatedAt,
		UpdatedAt:    company.UpdatedAt,
	}
	if company.Owner != nil {
		owner := ToUserDTO(*company.Owner)
		dto.Owner = &owner
	}
	return dto
}

// ToCompanyDTOPtr converts an optional company
func ToCompanyDTOPtr(company *models.Company) *CompanyDTO {
	if company == nil {
		return nil
	}
	dto := ToCompanyDTO(*company)
	return &dto
}

func ToPortfolioDTO(portfolio models.Portfolio) PortfolioDTO {
	dto := PortfolioDTO{
		ID:              portfolio.ID,
		UserID:          portfolio.UserID,
		Title:           portfolio.Title,
		Profession:      portfolio.Profession,
		Bio:             portfolio.Bio,
		Skills:          portfolio.Skills,
		ExperienceYears: portfolio.ExperienceYears,
		Education:       portfolio.Education,
		Projects:        portfolio.Projects,
		ContactInfo:     portfolio.ContactInfo,
		IsPublic:        portfolio.IsPublic,
		IsApproved:      portfolio.IsApproved,
		CreatedAt:       portfolio.CreatedAt,
		UpdatedAt:       portfolio.UpdatedAt,
	}
	if portfolio.Owner != nil {
		owner := ToUserDTO(*portfolio.Owner)
		dto.Owner = &owner
	}
	return dto
}

// ToPortfolioDTOPtr converts an optional portfolio
func ToPortfolioDTOPtr(portfolio *models.Portfolio) *PortfolioDTO {
	if portfolio == nil {
		return nil
	}
	dto := ToPortfolioDTO(*portfolio)
	return &dto
}

func ToVacancyDTO(vacancy models.Vacancy) VacancyDTO {
	return VacancyDTO{
		ID:              vacancy.ID,
		EmployerID:      vacancy.EmployerID,
		CompanyID:       vacancy.CompanyID,
		Title:           vacancy.Title,
		Description:     vacancy.Description,
		Requirements:    vacancy.Requirements,
		SalaryMin:       vacancy.SalaryMin,
		SalaryMax:       vacancy.SalaryMax,
		EmploymentType:  vacancy.EmploymentType,
		ExperienceLevel: vacancy.ExperienceLevel,
		Location:        vacancy.Location,
		IsActive:        vacancy.IsActive,
		IsApproved:      vacancy.IsApproved,
		CreatedAt:       vacancy.CreatedAt,
		Company:         ToCompanyDTOPtr(vacancy.Company),
	}
}

func ToVacancyDTOs(vacancies []models.Vacancy) []VacancyDTO {
	out := make([]VacancyDTO, len(vacancies))
	for i, v := range vacancies {
		out[i] = ToVacancyDTO(v)
	}
	return out
}

func ToApplicationDTO(application models.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:              application.ID,
		VacancyID:       application.VacancyID,
		SeekerID:        application.SeekerID,
		PortfolioID:     application.PortfolioID,
		CoverLetter:     application.CoverLetter,
		Status:          application.Status,
		RejectionReason: application.RejectionReason,
		CreatedAt:       application.CreatedAt,
		Portfolio:       ToPortfolioDTOPtr(application.Portfolio),
	}
	if application.Vacancy != nil {
		vacancy := ToVacancyDTO(*application.Vacancy)
		dto.Vacancy = &vacancy
	}
	if application.Seeker != nil {
		seeker := ToUserDTO(*application.Seeker)
		dto.Seeker = &seeker
	}
	return dto
}

func ToApplicationDTOs(applications []models.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, len(applications))
	for i, a := range applications {
		out[i] = ToApplicationDTO(a)
	}
	return out
}

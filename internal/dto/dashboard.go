package dto

import "github.com/hireboard/hireboard/internal/services"

// EmployerDashboardDTO is the employer's landing page
type EmployerDashboardDTO struct {
	Company      *CompanyDTO      `json:"company"`
	Vacancies    []VacancyDTO     `json:"vacancies"`
	Applications []ApplicationDTO `json:"applications"`
}

// SeekerDashboardDTO is the seeker's landing page
type SeekerDashboardDTO struct {
	Portfolio    *PortfolioDTO    `json:"portfolio"`
	Applications []ApplicationDTO `json:"applications"`
}

// StatsDTO holds the admin overview counters
type StatsDTO struct {
	Users            int64 `json:"users_count"`
	Companies        int64 `json:"companies_count"`
	Vacancies        int64 `json:"vacancies_count"`
	Applications     int64 `json:"applications_count"`
	PendingVacancies int64 `json:"pending_vacancies"`
}

// OverviewDTO is the admin landing page
type OverviewDTO struct {
	Stats           StatsDTO     `json:"stats"`
	RecentUsers     []UserDTO    `json:"recent_users"`
	RecentVacancies []VacancyDTO `json:"recent_vacancies"`
}

// EntityListDTO is an admin listing of one entity kind
type EntityListDTO struct {
	Kind       services.EntityKind `json:"kind"`
	Sort       string              `json:"sort"`
	Order      string              `json:"order"`
	Healed     int64               `json:"healed,omitempty"`
	Users      []UserDTO           `json:"users,omitempty"`
	Companies  []CompanyDTO        `json:"companies,omitempty"`
	Portfolios []PortfolioDTO      `json:"portfolios,omitempty"`
	Vacancies  []VacancyDTO        `json:"vacancies,omitempty"`
}

// CompanyDetailDTO is a company with its vacancies
type CompanyDetailDTO struct {
	Company   CompanyDTO   `json:"company"`
	Vacancies []VacancyDTO `json:"vacancies"`
}

func ToEmployerDashboardDTO(d *services.EmployerDashboard) EmployerDashboardDTO {
	return EmployerDashboardDTO{
		Company:      ToCompanyDTOPtr(d.Company),
		Vacancies:    ToVacancyDTOs(d.Vacancies),
		Applications: ToApplicationDTOs(d.Applications),
	}
}

func ToSeekerDashboardDTO(d *services.SeekerDashboard) SeekerDashboardDTO {
	return SeekerDashboardDTO{
		Portfolio:    ToPortfolioDTOPtr(d.Portfolio),
		Applications: ToApplicationDTOs(d.Applications),
	}
}

func ToOverviewDTO(o *services.Overview) OverviewDTO {
	return OverviewDTO{
		Stats: StatsDTO{
			Users:            o.Users,
			Companies:        o.Companies,
			Vacancies:        o.Vacancies,
			Applications:     o.Applications,
			PendingVacancies: o.PendingVacancy,
		},
		RecentUsers:     ToUserDTOs(o.RecentUsers),
		RecentVacancies: ToVacancyDTOs(o.RecentVacancies),
	}
}

// ToEntityListDTO converts a listing; only the slice of the listed kind is set
func ToEntityListDTO(list *services.EntityList) EntityListDTO {
	order := "asc"
	if list.Sort.Desc {
		order = "desc"
	}
	dto := EntityListDTO{
		Kind:   list.Kind,
		Sort:   list.Sort.Column,
		Order:  order,
		Healed: list.Healed,
	}

	switch list.Kind {
	case services.KindUser:
		dto.Users = ToUserDTOs(list.Users)
	case services.KindCompany:
		dto.Companies = make([]CompanyDTO, len(list.Companies))
		for i, c := range list.Companies {
			dto.Companies[i] = ToCompanyDTO(c)
		}
	case services.KindPortfolio:
		dto.Portfolios = make([]PortfolioDTO, len(list.Portfolios))
		for i, p := range list.Portfolios {
			dto.Portfolios[i] = ToPortfolioDTO(p)
		}
	case services.KindVacancy:
		dto.Vacancies = ToVacancyDTOs(list.Vacancies)
	}
	return dto
}

func ToCompanyDetailDTO(d *services.CompanyDetail) CompanyDetailDTO {
	return CompanyDetailDTO{
		Company:   ToCompanyDTO(*d.Company),
		Vacancies: ToVacancyDTOs(d.Vacancies),
	}
}

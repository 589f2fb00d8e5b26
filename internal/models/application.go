package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known application statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application references the live portfolio, not a copy of it.
type Application struct {
	ID              uint64            `gorm:"primarykey" json:"id"`
	VacancyID       uint64            `gorm:"not null;uniqueIndex:idx_applications_vacancy_seeker" json:"vacancy_id"`
	SeekerID        uint64            `gorm:"not null;uniqueIndex:idx_applications_vacancy_seeker" json:"seeker_id"`
	PortfolioID     uint64            `gorm:"not null;index" json:"portfolio_id"`
	CoverLetter     string            `gorm:"type:text" json:"cover_letter"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RejectionReason *string           `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relations
	Vacancy   *Vacancy   `gorm:"foreignKey:VacancyID" json:"vacancy,omitempty"`
	Seeker    *User      `gorm:"foreignKey:SeekerID" json:"seeker,omitempty"`
	Portfolio *Portfolio `gorm:"foreignKey:PortfolioID" json:"portfolio,omitempty"`
}

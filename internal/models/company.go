package models

import "time"

type Company struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string    `gorm:"column:company_name;type:varchar(200);not null" json:"company_name"`
	Description  string    `gorm:"type:text" json:"description"`
	Industry     string    `gorm:"type:varchar(100)" json:"industry"`
	Website      string    `gorm:"type:varchar(200)" json:"website"`
	ContactEmail string    `gorm:"type:varchar(100)" json:"contact_email"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Address      string    `gorm:"type:text" json:"address"`
	IsApproved   bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Owner     *User     `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Vacancies []Vacancy `gorm:"foreignKey:CompanyID" json:"vacancies,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Portfolio timestamps are pointers because rows written by older releases
// may carry NULLs; they are healed on read.
type Portfolio struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	UserID          uint64     `gorm:"not null;index" json:"user_id"`
	Title           string     `gorm:"type:varchar(200);not null" json:"title"`
	Profession      string     `gorm:"type:varchar(100);not null" json:"profession"`
	Bio             string     `gorm:"type:text" json:"bio"`
	Skills          string     `gorm:"type:text" json:"skills"`
	ExperienceYears *int       `json:"experience_years"`
	Education       string     `gorm:"type:text" json:"education"`
	Projects        string     `gorm:"type:text" json:"projects"`
	ContactInfo     string     `gorm:"type:text" json:"contact_info"`
	IsPublic        bool       `gorm:"not null" json:"is_public"`
	IsApproved      bool       `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`

	// Relations
	Owner *User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}

// HasMissingTimestamps reports whether the row predates the non-null timestamp rule.
func (p *Portfolio) HasMissingTimestamps() bool {
	return p.CreatedAt == nil || p.UpdatedAt == nil
}

// HealTimestamps stamps now into whichever timestamp is missing.
func (p *Portfolio) HealTimestamps(now time.Time) bool {
	healed := false
	if p.CreatedAt == nil {
		p.CreatedAt = &now
		healed = true
	}
	if p.UpdatedAt == nil {
		p.UpdatedAt = &now
		healed = true
	}
	return healed
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	p.HealTimestamps(time.Now())
	return nil
}

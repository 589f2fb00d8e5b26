package models

import "time"

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Role         Role       `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Company    *Company    `gorm:"foreignKey:UserID" json:"-"`
	Portfolios []Portfolio `gorm:"foreignKey:UserID" json:"-"`
}

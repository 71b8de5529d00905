package models

import "time"

// UserRole values stored in users.role.
const (
	RoleGeneral = "GENERAL"
	RoleAdmin   = "ADMIN"
)

// Organizations an admin account can belong to.
const (
	OrgBusan  = "busan"
	OrgNTS    = "nts"
	OrgPolice = "police"
	OrgSystem = "system"
)

type User struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(100);not null" json:"username"`
	Email        string     `gorm:"type:varchar(255);unique;not null;index" json:"email"`
	PasswordHash string     `gorm:"column:hashed_password;type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`
	Role         string     `gorm:"type:varchar(20);not null;default:GENERAL" json:"role"`
	Organization string     `gorm:"type:varchar(50)" json:"organization"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// IsAdminOf reports whether the user is an ADMIN of one of the given
// organizations. System admins pass every check.
func (u *User) IsAdminOf(orgs ...string) bool {
	if u.Role != RoleAdmin {
		return false
	}
	if u.Organization == OrgSystem {
		return true
	}
	for _, org := range orgs {
		if u.Organization == org {
			return true
		}
	}
	return false
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserUpdateRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

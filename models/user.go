package models

import "time"

// User is a staff account. What it may touch is decided by its
// UserPermission rows, not by a role column.
type User struct {
	ID           uint       `gorm:"primaryKey"           json:"id"`
	Username     string     `gorm:"uniqueIndex;size:120" json:"username"`
	FullName     string     `gorm:"size:180"             json:"full_name"`
	EmployeeCode string     `gorm:"size:60"              json:"employee_code"`
	Designation  string     `gorm:"size:120"             json:"designation"`
	Department   string     `gorm:"size:120"             json:"department"`
	Phone        string     `gorm:"size:60"              json:"phone"`
	AvatarURL    string     `gorm:"size:255"             json:"avatar_url"`
	PasswordHash string     `gorm:"size:255"             json:"-"`
	IsActive     bool       `gorm:"default:true"         json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

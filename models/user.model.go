package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string    `json:"profile_image" gorm:"default:''"`
	Name         string    `json:"name" gorm:"default:''"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Mobile       string    `json:"mobile" gorm:"default:''"`
	Role         string    `json:"role" gorm:"default:'USER'"` // USER, INSTRUCTOR, ADMIN
	Password     string    `json:"-" gorm:"not null"`
	Points       uint      `json:"points" gorm:"default:0"`          // Mutated only through the assessment ledger
	Badge        string    `json:"badge" gorm:"default:'NEWBIE'"`    // Derived from Points, never set independently
	LastLogin    time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted    bool      `json:"-" gorm:"default:false"`
}

package domain

import (
	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"`
}

func (User) TableName() string { return "users" }

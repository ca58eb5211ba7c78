package model

import (
	"time"

	"github.com/grand-thief-cash/workplan/internal/consts"
)

type User struct {
	ID           int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string      `gorm:"column:name" json:"name"`
	Role         consts.Role `gorm:"column:role" json:"role"`
	DepartmentID int64       `gorm:"column:department_id" json:"department_id"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Department struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"column:name" json:"name"`
	ManagerUserID int64     `gorm:"column:manager_user_id" json:"manager_user_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string { return "departments" }

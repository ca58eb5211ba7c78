package model

import "time"

// Task is a unit of plannable work. Description is a pointer so privacy
// projection can distinguish "no description" from a masked one.
type Task struct {
	ID                   int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title                string    `gorm:"column:title" json:"title"`
	Description          *string   `gorm:"column:description" json:"description,omitempty"`
	EstimateMinutes      int       `gorm:"column:estimate_minutes" json:"estimate_minutes"`
	IsPrivate            bool      `gorm:"column:is_private" json:"is_private"`
	AssignedUserID       int64     `gorm:"column:assigned_user_id" json:"assigned_user_id"`
	AssignedDepartmentID int64     `gorm:"column:assigned_department_id" json:"assigned_department_id"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

package model

import "time"

// PlanSlot reserves a time range on a task for a user. Period is stored as
// the tstzrange literal produced by the range codec; the database column is
// a real tstzrange so the exclusion constraint can see it.
type PlanSlot struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TaskID          int64     `gorm:"column:task_id" json:"task_id"`
	UserID          int64     `gorm:"column:user_id" json:"user_id"`
	Period          string    `gorm:"column:period;type:tstzrange" json:"period"`
	AllowOverlap    bool      `gorm:"column:allow_overlap" json:"allow_overlap"`
	CreatedByUserID int64     `gorm:"column:created_by_user_id" json:"created_by_user_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PlanSlot) TableName() string { return "plan_slots" }

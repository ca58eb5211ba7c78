package model

import "time"

// TimeLog records time actually spent on a task, as opposed to the planned
// PlanSlot. Period uses the same tstzrange literal encoding.
type TimeLog struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TaskID    int64     `gorm:"column:task_id" json:"task_id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Period    string    `gorm:"column:period;type:tstzrange" json:"period"`
	Note      string    `gorm:"column:note" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TimeLog) TableName() string { return "time_logs" }

package config

import (
	"github.com/grand-thief-cash/workplan/internal/application"
)

// BizConfig is the project section of the yaml config, decoded into the
// pointer handed to the loader before boot.
type BizConfig struct {
	DataSource      string `yaml:"data_source" json:"data_source"`
	MaxListSize     int    `yaml:"max_list_size" json:"max_list_size"`
	TimeLogEditDays int    `yaml:"time_log_edit_days" json:"time_log_edit_days"`
	MinSlotMinutes  int    `yaml:"min_slot_minutes" json:"min_slot_minutes"`
}

func (c *BizConfig) applyDefaults() {
	if c.DataSource == "" {
		c.DataSource = "default"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 200
	}
	if c.TimeLogEditDays <= 0 {
		c.TimeLogEditDays = 7
	}
	if c.MinSlotMinutes <= 0 {
		c.MinSlotMinutes = 15
	}
}

var bizConfig = &BizConfig{}

// Init hands the biz config pointer to the application loader. Must run
// before application.Run.
func Init(app *application.App) {
	app.SetBizConfig(bizConfig)
}

func GetBizConfig() *BizConfig {
	bizConfig.applyDefaults()
	return bizConfig
}

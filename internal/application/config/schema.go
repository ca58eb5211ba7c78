package config

import (
	"github.com/grand-thief-cash/workplan/internal/application/components/http_server"
	"github.com/grand-thief-cash/workplan/internal/application/components/logging"
	"github.com/grand-thief-cash/workplan/internal/application/components/postgresgorm"
	"github.com/grand-thief-cash/workplan/internal/application/components/prometheus"
)

// AppConfig is the full application configuration tree.
type AppConfig struct {
	APPInfo      *APPInfo                      `yaml:"app_info" json:"app_info"`
	Logging      *logging.LoggingConfig        `yaml:"logging" json:"logging"`
	HTTPServer   *http_server.HTTPServerConfig `yaml:"http_server" json:"http_server"`
	PostgresGORM *postgresgorm.Config          `yaml:"postgres_gorm" json:"postgres_gorm"`
	Prometheus   *prometheus.Config            `yaml:"prometheus" json:"prometheus"`
	// BizConfig holds the project-owned `biz_config` subtree; decoded into the
	// pointer supplied via SetBizConfig.
	BizConfig any `yaml:"biz_config" json:"biz_config"`
}

type APPInfo struct {
	APPName string `yaml:"app_name" json:"app_name"`
	ENV     string `yaml:"env" json:"env"`
}

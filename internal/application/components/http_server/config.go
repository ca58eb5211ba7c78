package http_server

import "time"

// HTTPServerConfig defines server settings.
type HTTPServerConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled"`
	Address         string        `yaml:"address" json:"address"`                   // e.g. ":8080"
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`         // max time to read the whole request
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`       // max time to write the response
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`         // keep-alive idle connection lifetime
	GracefulTimeout time.Duration `yaml:"graceful_timeout" json:"graceful_timeout"` // shutdown bound for in-flight requests
	EnableHealth    bool          `yaml:"enable_health" json:"enable_health"`
	// ServiceName injected from APPInfo.APPName (not user configurable via YAML directly)
	ServiceName string `yaml:"-" json:"-"`
}

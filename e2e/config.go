package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// STITCH_E2E_ADDR points to a live processing service; the suite is
	// skipped when it is empty.
	Addr string `envconfig:"STITCH_E2E_ADDR"`
	// E2E_DEBUG_JSON allows dumping full request/response bodies as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_USER_AGENT selects the device profile the suite runs under
	UserAgent string `envconfig:"E2E_USER_AGENT"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

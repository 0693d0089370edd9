// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
		// AllowedOrigins are the site origins permitted to call the gateway
		// cross-origin. Empty allows any origin (local development).
		AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	} `yaml:"app" json:"app"`

	SmartRecruiters struct {
		BaseURL     string `yaml:"base_url" json:"base_url"`
		IdentityURL string `yaml:"identity_url" json:"identity_url"`
		// Department is the department label whose jobs this site shows;
		// other departments share the same ATS account.
		Department string `yaml:"department" json:"department"`
		// PublicationSource is the channel name of the career-page
		// publication used to build apply links.
		PublicationSource string `yaml:"publication_source" json:"publication_source"`
	} `yaml:"smartrecruiters" json:"smartrecruiters"`

	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds" json:"ttl_seconds"`
	} `yaml:"cache" json:"cache"`

	Submissions struct {
		// Per-client-IP limit on the candidate submission endpoint.
		RatePerMinute int `yaml:"rate_per_minute" json:"rate_per_minute"`
		Burst         int `yaml:"burst" json:"burst"`
	} `yaml:"submissions" json:"submissions"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

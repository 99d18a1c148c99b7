package restmachinery

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

const envconfigPrefix = "API_SERVER"

// Config represents configuration options for the API server. We use an
// exported interface to govern access to our config because the underlying
// struct has fields we don't want to expose.
type Config interface {
	Port() int
	TLSEnabled() bool
	TLSCertPath() string
	TLSKeyPath() string
	CORSAllowedOrigins() []string
}

type config struct {
	PortAttr               int      `envconfig:"PORT"`
	TLSEnabledAttr         bool     `envconfig:"TLS_ENABLED"`
	TLSCertPathAttr        string   `envconfig:"TLS_CERT_PATH"`
	TLSKeyPathAttr         string   `envconfig:"TLS_KEY_PATH"`
	CORSAllowedOriginsAttr []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied.
func NewConfigWithDefaults() Config {
	return &config{
		PortAttr:               8080,
		CORSAllowedOriginsAttr: []string{"*"},
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults().(*config)
	if err := envconfig.Process(envconfigPrefix, c); err != nil {
		return c, err
	}
	if c.TLSEnabledAttr {
		if c.TLSCertPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"API_SERVER_TLS_CERT_PATH environment variable",
			)
		}
		if c.TLSKeyPathAttr == "" {
			return c, errors.New(
				"with TLS enabled, a value is required for the " +
					"API_SERVER_TLS_KEY_PATH environment variable",
			)
		}
	}
	return c, nil
}

func (c *config) Port() int {
	return c.PortAttr
}

func (c *config) TLSEnabled() bool {
	return c.TLSEnabledAttr
}

func (c *config) TLSCertPath() string {
	return c.TLSCertPathAttr
}

func (c *config) TLSKeyPath() string {
	return c.TLSKeyPathAttr
}

func (c *config) CORSAllowedOrigins() []string {
	return c.CORSAllowedOriginsAttr
}

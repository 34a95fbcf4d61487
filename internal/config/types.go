package config

// AppConfig is the top-level configuration for the server.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Fineract FineractConfig `yaml:"fineract"`
	Codes    CodesConfig    `yaml:"codes"`
	HTTP     HTTPConfig     `yaml:"http"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig identifies the MCP server to connecting agents.
type ServerConfig struct {
	Name    string `yaml:"name" validate:"required"`
	Version string `yaml:"version"`
}

// FineractConfig is the read-only backend context. The basic token and
// tenant id are injected into every request; nothing in the core mutates
// them.
type FineractConfig struct {
	BaseURL    string `yaml:"base_url" validate:"required,url"`
	BasicToken string `yaml:"basic_token"`
	TenantID   string `yaml:"tenant_id" validate:"required"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gt=0"`

	// Dev instances ship a self-signed certificate.
	SkipTLSVerify bool `yaml:"skip_tls_verify"`
}

// CodesConfig maps logical code groups to the numeric ids of the deployed
// Fineract instance. The defaults match a stock seed database; deployments
// with custom codes override them here.
type CodesConfig struct {
	AddressType   int64 `yaml:"address_type"`
	StateProvince int64 `yaml:"state_province"`
	Country       int64 `yaml:"country"`
	Relationship  int64 `yaml:"relationship"`
	Gender        int64 `yaml:"gender"`
	Profession    int64 `yaml:"profession"`
	MaritalStatus int64 `yaml:"marital_status"`

	// Fallback code values used when a family member's relationship or
	// gender cannot be matched by name.
	DefaultRelationshipID int64 `yaml:"default_relationship_id"`
	DefaultGenderID       int64 `yaml:"default_gender_id"`
}

// HTTPConfig controls the optional REST gateway that mirrors the tool
// surface.
type HTTPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// LoggingConfig controls logrus output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Name:    "mifosx-mcp",
			Version: "1.0.0",
		},
		Fineract: FineractConfig{
			BaseURL:    "https://localhost:8443",
			TenantID:   "default",
			TimeoutSec: 30,
		},
		Codes: CodesConfig{
			AddressType:           29,
			StateProvince:         27,
			Country:               28,
			Relationship:          32,
			Gender:                4,
			Profession:            34,
			MaritalStatus:         30,
			DefaultRelationshipID: 1,
			DefaultGenderID:       1,
		},
		HTTP: HTTPConfig{
			Enabled: false,
			Port:    8000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fenwick/hearth/internal/household"
)

// Log output formats.
const (
	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig             `yaml:"app"`
	SQLite SQLiteConfig                  `yaml:"sqlite"`
	Family map[string]FamilyMemberConfig `yaml:"family"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	for key, m := range c.Family {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("family member %q: %w", key, err)
		}
	}
	return nil
}

// FamilyMembers converts the configured family section into domain seed records.
func (c *Config) FamilyMembers() []household.FamilyMember {
	members := make([]household.FamilyMember, 0, len(c.Family))
	for _, m := range c.Family {
		members = append(members, household.FamilyMember{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Age:       m.Age,
			Children:  m.Children,
		})
	}
	return members
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
	HTTP      HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	// Normalise empty format to JSON for backward compatibility.
	if c.LogFormat == "" {
		c.LogFormat = LogFormatJSON
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.Required, validation.In(LogFormatJSON, LogFormatPretty)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// FamilyMemberConfig declares one household member in the seed configuration.
// Children lists the first names of this member's children; unresolvable
// names are skipped at seed time rather than rejected here.
type FamilyMemberConfig struct {
	FirstName string   `yaml:"first_name"`
	LastName  string   `yaml:"last_name"`
	Age       int      `yaml:"age"`
	Children  []string `yaml:"children"`
}

// Validate validates a family member declaration.
func (c *FamilyMemberConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FirstName, validation.Required),
		validation.Field(&c.Age, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatJSON,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./hearth.db",
		},
	}
}

package fingertec

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ModeSDK = "sdk"
	ModeDB  = "db"
)

const (
	defaultInCodes  = "IN,I,0"
	defaultOutCodes = "OUT,O,1"
)

// Config carries everything needed to build an adapter. It is populated
// from the environment (FromEnv) or from a YAML document stored in SSM
// (see infrastructure/devops).
type Config struct {
	Mode string `yaml:"mode" validate:"omitempty,oneof=sdk db"`

	// sdk mode
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"omitempty,min=1,max=65535"`

	// db mode. Query, when set, must select employee id, timestamp and
	// direction columns in that order and bind the lower bound as @since.
	// Without it a query is synthesized from the table/column names.
	DBURL           string `yaml:"dbUrl"`
	Query           string `yaml:"query"`
	Table           string `yaml:"table"`
	EmployeeColumn  string `yaml:"employeeColumn"`
	TimeColumn      string `yaml:"timeColumn"`
	DirectionColumn string `yaml:"directionColumn"`

	// comma-separated vendor direction tokens
	InCodes  string `yaml:"inCodes"`
	OutCodes string `yaml:"outCodes"`
}

// FromEnv reads the FINGERTEC_* variables, applying defaults for mode and
// direction token sets.
func FromEnv() *Config {
	port := 0
	if v := os.Getenv("FINGERTEC_PORT"); v != "" {
		port, _ = strconv.Atoi(v)
	}

	cfg := &Config{
		Mode:            os.Getenv("FINGERTEC_MODE"),
		Host:            os.Getenv("FINGERTEC_HOST"),
		Port:            port,
		DBURL:           os.Getenv("FINGERTEC_DB_URL"),
		Query:           os.Getenv("FINGERTEC_DB_QUERY"),
		Table:           os.Getenv("FINGERTEC_DB_TABLE"),
		EmployeeColumn:  os.Getenv("FINGERTEC_DB_EMPLOYEE_COLUMN"),
		TimeColumn:      os.Getenv("FINGERTEC_DB_TIME_COLUMN"),
		DirectionColumn: os.Getenv("FINGERTEC_DB_DIRECTION_COLUMN"),
		InCodes:         os.Getenv("FINGERTEC_IN_CODES"),
		OutCodes:        os.Getenv("FINGERTEC_OUT_CODES"),
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDB
	}
	if c.InCodes == "" {
		c.InCodes = defaultInCodes
	}
	if c.OutCodes == "" {
		c.OutCodes = defaultOutCodes
	}
}

func (c *Config) Validate() error {
	c.applyDefaults()
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid fingertec config: %w", err)
	}
	return nil
}

// Directions builds the direction translation table from the configured
// token lists.
func (c *Config) Directions() DirectionMap {
	return NewDirectionMap(splitCodes(c.InCodes), splitCodes(c.OutCodes))
}

func splitCodes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

const (
	configBaseName = "timetable_config"

	// DateLayout is the layout used for term dates
	DateLayout = "2006-01-02"

	// MaxMorningWeight is the upper bound accepted for the morning weight
	MaxMorningWeight = 20.0
)

// StoreConfig selects where scheduling sessions are persisted
type StoreConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=memory postgres"`
	DatabaseURL string `yaml:"databaseURL,omitempty" validate:"required_if=Backend postgres"`
}

// RedisConfig configures the optional result cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `yaml:"addr,omitempty"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db,omitempty" validate:"gte=0"`
	TTL      time.Duration `yaml:"ttl,omitempty" validate:"gte=0"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Addr           string `yaml:"addr" validate:"required"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes" validate:"gt=0"`
}

// SheetsConfig configures publishing to Google Sheets
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
}

// Closure is a recurring period with no teaching (holidays, reading weeks, ...)
type Closure struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// TermConfig describes the dates a weekly timetable is repeated over
type TermConfig struct {
	Start    string    `yaml:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End      string    `yaml:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Closures []Closure `yaml:"closures,omitempty" validate:"dive"`
}

// Config represents the application configuration
type Config struct {
	MorningWeight float64      `yaml:"morningWeight" validate:"gte=0"`
	LabRoomMarker string       `yaml:"labRoomMarker" validate:"required"`
	DefaultRooms  []string     `yaml:"defaultRooms,omitempty" validate:"dive,required"`
	Store         StoreConfig  `yaml:"store"`
	Redis         RedisConfig  `yaml:"redis,omitempty"`
	HTTP          HTTPConfig   `yaml:"http"`
	Sheets        SheetsConfig `yaml:"sheets,omitempty"`
	Term          TermConfig   `yaml:"term,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used for any field the config file leaves out
func Default() *Config {
	return &Config{
		MorningWeight: scheduler.DefaultMorningWeight,
		LabRoomMarker: "Lab",
		Store:         StoreConfig{Backend: "memory"},
		Redis:         RedisConfig{TTL: time.Hour},
		HTTP:          HTTPConfig{Addr: ":5000", MaxUploadBytes: 5 << 20},
	}
}

// Load loads and validates the configuration from timetable_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads timetable_config.<env>.yaml (or timetable_config.yaml when env is empty),
// applies .env and environment overrides and validates the result
func LoadWithEnv(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configPath, err := findFile(fileNameForEnv(configBaseName, env, "yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of the defaults, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides lets deployment secrets live outside the config file
func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Store.DatabaseURL = url
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
}

// Validate validates the configuration struct, the term dates and closure rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if !IsFiniteMorningWeight(cfg.MorningWeight) {
		return fmt.Errorf("config validation failed: morningWeight must be a finite number")
	}

	if cfg.Term.Start != "" || cfg.Term.End != "" {
		start, end, err := cfg.Term.Dates()
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("term end %s is before term start %s", cfg.Term.End, cfg.Term.Start)
		}
	}

	for i, closure := range cfg.Term.Closures {
		if _, err := rrule.StrToRRule(closure.RRule); err != nil {
			return fmt.Errorf("invalid rrule in term.closures[%d] (%s): %w", i, closure.Name, err)
		}
	}

	return nil
}

// Dates parses the term start and end. Both must be set.
func (t TermConfig) Dates() (time.Time, time.Time, error) {
	if t.Start == "" || t.End == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("term start and end must both be set")
	}
	start, err := time.Parse(DateLayout, t.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid term start: %w", err)
	}
	end, err := time.Parse(DateLayout, t.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid term end: %w", err)
	}
	return start, end, nil
}

// ScoreWeights returns the scorer weights for the configured morning weight
func (c *Config) ScoreWeights() scheduler.ScoreWeights {
	return scheduler.DefaultScoreWeights(c.MorningWeight)
}

// Rooms returns the configured fallback rooms, or the built-in defaults when none are set
func (c *Config) Rooms() []scheduler.Room {
	if len(c.DefaultRooms) == 0 {
		return scheduler.DefaultRooms()
	}
	rooms := make([]scheduler.Room, 0, len(c.DefaultRooms))
	for _, name := range c.DefaultRooms {
		rooms = append(rooms, scheduler.Room{Name: name, IsLab: strings.Contains(name, c.LabRoomMarker)})
	}
	return rooms
}

// ClampMorningWeight bounds a requested morning weight to [0, MaxMorningWeight].
// NaN maps to the default weight.
func ClampMorningWeight(w float64) float64 {
	if math.IsNaN(w) {
		return scheduler.DefaultMorningWeight
	}
	return min(max(w, 0), MaxMorningWeight)
}

// IsFiniteMorningWeight reports whether w can be used as a morning weight at all
func IsFiniteMorningWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0)
}

// MorningWeightInRange reports whether w lies in the recommended [0, MaxMorningWeight] range
func MorningWeightInRange(w float64) bool {
	return w >= 0 && w <= MaxMorningWeight
}

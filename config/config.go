package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Cache      CacheConfig      `yaml:"cache"`
	Restaurant RestaurantConfig `yaml:"restaurant"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	EventsTopic string   `yaml:"events_topic"`
	GroupID     string   `yaml:"group_id"`
}

type CacheConfig struct {
	TablesTTLSeconds int `yaml:"tables_ttl_seconds"`
}

func (c CacheConfig) TablesTTL() time.Duration {
	return time.Duration(c.TablesTTLSeconds) * time.Second
}

// RestaurantConfig holds the business calendar: the weekday the restaurant
// is closed, the opening time and the last-seating cutoff. Times are
// "HH:MM" on the restaurant's local clock; bookings at or before opening
// and at or after last seating are rejected.
type RestaurantConfig struct {
	ClosedWeekday string `yaml:"closed_weekday"`
	OpenTime      string `yaml:"open_time"`
	LastSeating   string `yaml:"last_seating"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Hours is the parsed form of RestaurantConfig consumed by the reservation
// validator.
type Hours struct {
	ClosedWeekday time.Weekday
	Open          time.Duration // offset from midnight
	LastSeating   time.Duration
}

func (r RestaurantConfig) Hours() (Hours, error) {
	h := Hours{ClosedWeekday: time.Tuesday}
	if r.ClosedWeekday != "" {
		day, ok := weekdays[strings.ToLower(r.ClosedWeekday)]
		if !ok {
			return Hours{}, fmt.Errorf("unknown closed_weekday %q", r.ClosedWeekday)
		}
		h.ClosedWeekday = day
	}

	var err error
	if h.Open, err = parseClock(r.OpenTime, "10:30"); err != nil {
		return Hours{}, fmt.Errorf("open_time: %w", err)
	}
	if h.LastSeating, err = parseClock(r.LastSeating, "21:30"); err != nil {
		return Hours{}, fmt.Errorf("last_seating: %w", err)
	}
	if h.LastSeating <= h.Open {
		return Hours{}, fmt.Errorf("last_seating %s must be after open_time %s", r.LastSeating, r.OpenTime)
	}
	return h, nil
}

func parseClock(value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, err := cfg.Restaurant.Hours(); err != nil {
		return nil, fmt.Errorf("restaurant hours: %w", err)
	}

	return &cfg, nil
}
